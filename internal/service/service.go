package service

import (
	"context"
	"html/template"

	"github.com/eventninja/eventninja/internal/entity"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *SaveEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id int64) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	SaveEvent(ctx context.Context, id int64, req *SaveEventRequest) error
	GetDetails(ctx context.Context, eventID int64) (entity.EventDetails, error)
}

type RegistrationService interface {
	Register(ctx context.Context, req *RegisterRequest) (entity.RegistrationOutcome, error)
	CountForEvent(ctx context.Context, eventID int64) (int, error)
	ListAll(ctx context.Context) ([]*entity.RegistrationWithEvent, error)
}

// Presenter renders the public event page body: the stored content with
// the details block and the registration form (or the applicable
// notice) appended.
type Presenter interface {
	RenderContent(ctx context.Context, content string, eventID int64, session, outcome string) (template.HTML, error)
}

// AvailabilityCache caches registration counts per event. Wired only
// when redis is configured; a nil cache disables caching.
type AvailabilityCache interface {
	GetCount(ctx context.Context, eventID int64) (int, error)
	SetCount(ctx context.Context, eventID int64, count int) error
	Invalidate(ctx context.Context, eventID int64) error
}

// SaveEventRequest carries the editor form for creating or saving an
// event. Capacity stays text here; it is parsed on read, not on write.
// Autosave requests save title and body only, never metadata.
type SaveEventRequest struct {
	Title     string `form:"post_title"`
	Body      string `form:"post_content"`
	Date      string `form:"en_event_date"`
	EventTime string `form:"en_event_time"`
	Location  string `form:"en_event_location"`
	Capacity  string `form:"en_event_capacity"`
	Autosave  bool   `form:"autosave"`
}

type RegisterRequest struct {
	EventID int64  `form:"event_id"`
	Name    string `form:"en_user_name"`
	Email   string `form:"en_user_email"`
}
