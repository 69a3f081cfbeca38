package entity

import (
	"time"
)

type Registration struct {
	ID               int64     `json:"id" db:"id"`
	EventID          int64     `json:"event_id" db:"event_id"`
	UserName         string    `json:"user_name" db:"user_name"`
	UserEmail        string    `json:"user_email" db:"user_email"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
}

// RegistrationWithEvent is a registration joined with the title of the
// event it belongs to, for the admin listing.
type RegistrationWithEvent struct {
	Registration
	EventTitle string `json:"event_title"`
}

// RegistrationOutcome is the result signaled back to the event page
// through the "registered" redirect query parameter.
type RegistrationOutcome string

const (
	OutcomeSuccess   RegistrationOutcome = "success"
	OutcomeError     RegistrationOutcome = "error"
	OutcomeDuplicate RegistrationOutcome = "duplicate"
	OutcomeFull      RegistrationOutcome = "full"
)
