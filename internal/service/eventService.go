package service

import (
	"context"
	"fmt"

	repository "github.com/eventninja/eventninja/internal/database/postgres"
	"github.com/eventninja/eventninja/internal/entity"
)

type eventService struct {
	events repository.EventRepository
	meta   repository.EventMetaRepository
}

func NewEventService(events repository.EventRepository, meta repository.EventMetaRepository) EventService {
	return &eventService{
		events: events,
		meta:   meta,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *SaveEventRequest) (*entity.Event, error) {
	event := &entity.Event{
		Title: sanitizeText(req.Title),
		Body:  req.Body,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	if !req.Autosave {
		if err := s.saveDetails(ctx, event.ID, req); err != nil {
			return nil, err
		}
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	return s.events.GetAll(ctx)
}

// SaveEvent persists the editor form. Autosaves update the content
// only and never touch metadata.
func (s *eventService) SaveEvent(ctx context.Context, id int64, req *SaveEventRequest) error {
	event := &entity.Event{
		ID:    id,
		Title: sanitizeText(req.Title),
		Body:  req.Body,
	}

	if err := s.events.Update(ctx, event); err != nil {
		return err
	}

	if req.Autosave {
		return nil
	}

	return s.saveDetails(ctx, id, req)
}

func (s *eventService) saveDetails(ctx context.Context, eventID int64, req *SaveEventRequest) error {
	fields := map[string]string{
		entity.MetaKeyDate:     sanitizeText(req.Date),
		entity.MetaKeyTime:     sanitizeText(req.EventTime),
		entity.MetaKeyLocation: sanitizeText(req.Location),
		entity.MetaKeyCapacity: sanitizeText(req.Capacity),
	}

	for key, value := range fields {
		if err := s.meta.Set(ctx, eventID, key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	return nil
}

func (s *eventService) GetDetails(ctx context.Context, eventID int64) (entity.EventDetails, error) {
	var details entity.EventDetails

	date, err := s.meta.Get(ctx, eventID, entity.MetaKeyDate)
	if err != nil {
		return details, err
	}
	eventTime, err := s.meta.Get(ctx, eventID, entity.MetaKeyTime)
	if err != nil {
		return details, err
	}
	location, err := s.meta.Get(ctx, eventID, entity.MetaKeyLocation)
	if err != nil {
		return details, err
	}
	capacity, err := s.meta.Get(ctx, eventID, entity.MetaKeyCapacity)
	if err != nil {
		return details, err
	}

	details.Date = date
	details.Time = eventTime
	details.Location = location
	details.Capacity = parseCapacity(capacity)
	return details, nil
}
