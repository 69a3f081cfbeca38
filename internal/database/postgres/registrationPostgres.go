package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eventninja/eventninja/internal/entity"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised by the unique index
// on (event_id, user_email). It backstops the in-transaction duplicate
// check.
const uniqueViolation = "23505"

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) CountForEvent(ctx context.Context, eventID int64) (int, error) {
	query := `SELECT COUNT(*) FROM en_registrations WHERE event_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

func (r *registrationRepository) Exists(ctx context.Context, eventID int64, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM en_registrations WHERE event_id = $1 AND user_email = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, eventID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}

	return exists, nil
}

// Register inserts a registration after checking the duplicate and
// capacity constraints, all inside one transaction. The event row is
// locked for the duration so concurrent submissions for the same event
// serialize instead of both passing their checks. The duplicate check
// runs first: an already-registered email reports duplicate even when
// the event is full.
func (r *registrationRepository) Register(ctx context.Context, eventID int64, name, email string, capacity int) (*entity.Registration, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM en_registrations WHERE event_id = $1 AND user_email = $2)`
	if err := tx.QueryRowContext(ctx, query, eventID, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}
	if exists {
		return nil, entity.ErrDuplicateRegistration
	}

	if capacity > 0 {
		var count int
		query = `SELECT COUNT(*) FROM en_registrations WHERE event_id = $1`
		if err := tx.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count registrations: %w", err)
		}
		if count >= capacity {
			return nil, entity.ErrEventFull
		}
	}

	// The timestamp is always the server's now; the client never
	// supplies it.
	now := time.Now()
	registration := &entity.Registration{
		EventID:          eventID,
		UserName:         name,
		UserEmail:        email,
		RegistrationDate: now,
	}

	query = `
		INSERT INTO en_registrations (event_id, user_name, user_email, registration_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, eventID, name, email, now).Scan(&registration.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, entity.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return registration, nil
}

func (r *registrationRepository) ListWithEventTitles(ctx context.Context) ([]*entity.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.event_id, r.user_name, r.user_email, r.registration_date,
			COALESCE(e.title, '') AS event_title
		FROM en_registrations r
		LEFT JOIN events e ON e.id = r.event_id
		ORDER BY r.registration_date DESC, r.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []*entity.RegistrationWithEvent
	for rows.Next() {
		var reg entity.RegistrationWithEvent
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserName,
			&reg.UserEmail,
			&reg.RegistrationDate,
			&reg.EventTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, &reg)
	}

	return registrations, rows.Err()
}
