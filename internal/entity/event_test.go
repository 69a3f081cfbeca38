package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventDetailsUpcoming(t *testing.T) {
	tests := []struct {
		name string
		date string
		now  time.Time
		want bool
	}{
		{
			name: "future date",
			date: "2025-06-20",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "today",
			date: "2025-06-15",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "today late in the evening",
			date: "2025-06-15",
			now:  time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "today west of UTC",
			date: "2025-06-15",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.FixedZone("CDT", -5*3600)),
			want: true,
		},
		{
			name: "today east of UTC",
			date: "2025-06-15",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.FixedZone("JST", 9*3600)),
			want: true,
		},
		{
			name: "yesterday",
			date: "2025-06-14",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "yesterday west of UTC",
			date: "2025-06-14",
			now:  time.Date(2025, 6, 15, 0, 30, 0, 0, time.FixedZone("CDT", -5*3600)),
			want: false,
		},
		{
			name: "missing date",
			date: "",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "unparseable date",
			date: "soonish",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EventDetails{Date: tt.date}
			assert.Equal(t, tt.want, d.Upcoming(tt.now))
		})
	}
}
