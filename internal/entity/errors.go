package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Registration errors
	ErrDuplicateRegistration = errors.New("registration already exists for this event and email")
	ErrEventFull             = errors.New("event is fully booked")

	// Validation errors
	ErrInvalidEventID = errors.New("invalid event id")
	ErrInvalidName    = errors.New("name must not be empty")
	ErrInvalidEmail   = errors.New("invalid email address")
)
