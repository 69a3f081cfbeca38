package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type eventMetaRepository struct {
	db *sql.DB
}

func NewEventMetaRepository(db *sql.DB) EventMetaRepository {
	return &eventMetaRepository{db: db}
}

// Get returns the stored value for the key, or an empty string when no
// value has been set.
func (r *eventMetaRepository) Get(ctx context.Context, eventID int64, key string) (string, error) {
	query := `SELECT meta_value FROM event_meta WHERE event_id = $1 AND meta_key = $2`

	var value string
	err := r.db.QueryRowContext(ctx, query, eventID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get event meta: %w", err)
	}

	return value, nil
}

func (r *eventMetaRepository) Set(ctx context.Context, eventID int64, key, value string) error {
	query := `
		INSERT INTO event_meta (event_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`

	_, err := r.db.ExecContext(ctx, query, eventID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set event meta: %w", err)
	}

	return nil
}
