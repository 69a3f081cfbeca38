package repository

import (
	"context"

	"github.com/eventninja/eventninja/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
}

// EventMetaRepository is the generic key-value store for per-event
// attributes. Values are always text.
type EventMetaRepository interface {
	Get(ctx context.Context, eventID int64, key string) (string, error)
	Set(ctx context.Context, eventID int64, key, value string) error
}

// RegistrationRepository is append-only: registrations are never
// updated or deleted.
type RegistrationRepository interface {
	CountForEvent(ctx context.Context, eventID int64) (int, error)
	Exists(ctx context.Context, eventID int64, email string) (bool, error)

	// Register runs the duplicate check, the capacity check and the
	// insert in a single transaction holding a lock on the event row.
	// capacity <= 0 means unlimited. Returns
	// entity.ErrDuplicateRegistration or entity.ErrEventFull on the
	// corresponding rejection.
	Register(ctx context.Context, eventID int64, name, email string, capacity int) (*entity.Registration, error)

	ListWithEventTitles(ctx context.Context) ([]*entity.RegistrationWithEvent, error)
}
