package entity

import (
	"time"
)

// Meta keys for event attributes. Values are always stored as text;
// capacity is decimal text parsed on read.
const (
	MetaKeyDate     = "_en_event_date"
	MetaKeyTime     = "_en_event_time"
	MetaKeyLocation = "_en_event_location"
	MetaKeyCapacity = "_en_event_capacity"
)

// DateLayout is the calendar date format used by the event date meta field.
const DateLayout = "2006-01-02"

type Event struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EventDetails holds the metadata attributes attached to an event.
// Capacity <= 0 means the event has no capacity limit.
type EventDetails struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

func (d EventDetails) Empty() bool {
	return d.Date == "" && d.Time == "" && d.Location == "" && d.Capacity <= 0
}

func (d EventDetails) Unlimited() bool {
	return d.Capacity <= 0
}

// Upcoming reports whether the event date is today or in the future.
// The date is interpreted in now's location so the comparison is a
// plain calendar one. A missing or unparseable date counts as past.
func (d EventDetails) Upcoming(now time.Time) bool {
	date, err := time.ParseInLocation(DateLayout, d.Date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}
