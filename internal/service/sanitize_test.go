package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Conference Hall B",
			want:  "Conference Hall B",
		},
		{
			name:  "tags stripped",
			input: "<script>alert(1)</script>Main Stage",
			want:  "alert(1)Main Stage",
		},
		{
			name:  "control characters removed",
			input: "Room\x001\n",
			want:  "Room 1",
		},
		{
			name:  "whitespace trimmed",
			input: "  downtown venue  ",
			want:  "downtown venue",
		},
		{
			name:  "only markup becomes empty",
			input: "<b></b>",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeText(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	email, err := normalizeEmail("  Ann@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", email)

	_, err = normalizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = normalizeEmail("")
	assert.Error(t, err)
}

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "positive integer", input: "25", want: 25},
		{name: "padded", input: " 10 ", want: 10},
		{name: "zero means unlimited", input: "0", want: 0},
		{name: "negative means unlimited", input: "-3", want: 0},
		{name: "empty means unlimited", input: "", want: 0},
		{name: "garbage means unlimited", input: "lots", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCapacity(tt.input))
		})
	}
}
