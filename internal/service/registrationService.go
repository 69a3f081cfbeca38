package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/eventninja/eventninja/internal/database/postgres"
	"github.com/eventninja/eventninja/internal/entity"
	"github.com/eventninja/eventninja/pkg/telegram"

	"github.com/sirupsen/logrus"
)

// maxFieldLength matches the column width of user_name and user_email.
const maxFieldLength = 100

type registrationService struct {
	registrations repository.RegistrationRepository
	events        repository.EventRepository
	meta          repository.EventMetaRepository
	cache         AvailabilityCache
	bot           *telegram.Bot
	chatID        string
}

func NewRegistrationService(
	registrations repository.RegistrationRepository,
	events repository.EventRepository,
	meta repository.EventMetaRepository,
	cache AvailabilityCache,
	bot *telegram.Bot,
	chatID string,
) RegistrationService {
	return &registrationService{
		registrations: registrations,
		events:        events,
		meta:          meta,
		cache:         cache,
		bot:           bot,
		chatID:        chatID,
	}
}

// Register validates the submission and runs it against the duplicate
// and capacity constraints. Validation failures return an error and
// leave no trace; everything past validation resolves to an outcome
// for the redirect.
func (s *registrationService) Register(ctx context.Context, req *RegisterRequest) (entity.RegistrationOutcome, error) {
	if req.EventID <= 0 {
		return "", entity.ErrInvalidEventID
	}

	name := sanitizeText(req.Name)
	if name == "" || len(name) > maxFieldLength {
		return "", entity.ErrInvalidName
	}

	email, err := normalizeEmail(req.Email)
	if err != nil || len(email) > maxFieldLength {
		return "", entity.ErrInvalidEmail
	}

	capacityText, err := s.meta.Get(ctx, req.EventID, entity.MetaKeyCapacity)
	if err != nil {
		logrus.Errorf("Failed to read capacity for event %d: %v", req.EventID, err)
		return entity.OutcomeError, nil
	}
	capacity := parseCapacity(capacityText)

	registration, err := s.registrations.Register(ctx, req.EventID, name, email, capacity)
	switch {
	case errors.Is(err, entity.ErrDuplicateRegistration):
		return entity.OutcomeDuplicate, nil
	case errors.Is(err, entity.ErrEventFull):
		return entity.OutcomeFull, nil
	case err != nil:
		logrus.Errorf("Failed to register for event %d: %v", req.EventID, err)
		return entity.OutcomeError, nil
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": registration.ID,
		"event_id":        registration.EventID,
	}).Info("Registration created")

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.EventID); err != nil {
			logrus.Warnf("Failed to invalidate availability cache for event %d: %v", req.EventID, err)
		}
	}

	if s.bot != nil && s.chatID != "" {
		go s.notifyRegistration(registration)
	}

	return entity.OutcomeSuccess, nil
}

// CountForEvent reads through the availability cache when one is
// configured.
func (s *registrationService) CountForEvent(ctx context.Context, eventID int64) (int, error) {
	if s.cache != nil {
		if count, err := s.cache.GetCount(ctx, eventID); err == nil {
			return count, nil
		}
	}

	count, err := s.registrations.CountForEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetCount(ctx, eventID, count); err != nil {
			logrus.Warnf("Failed to cache availability for event %d: %v", eventID, err)
		}
	}

	return count, nil
}

func (s *registrationService) ListAll(ctx context.Context) ([]*entity.RegistrationWithEvent, error) {
	return s.registrations.ListWithEventTitles(ctx)
}

func (s *registrationService) notifyRegistration(registration *entity.Registration) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	title := fmt.Sprintf("event %d", registration.EventID)
	if event, err := s.events.GetByID(ctx, registration.EventID); err == nil {
		title = event.Title
	}

	text := fmt.Sprintf("New registration for %q: %s <%s>", title, registration.UserName, registration.UserEmail)
	if err := s.bot.SendMessage(s.chatID, text); err != nil {
		logrus.Errorf("Failed to send registration notification: %v", err)
	}
}
