package postgres

import (
	"database/sql"
	"fmt"

	"github.com/eventninja/eventninja/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates the tables on startup. Tables are never
// dropped: shutting the service down leaves all data in place.
func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Generic per-event key-value attributes. Rows belonging to a
		// deleted event are orphaned, not cleaned up.
		`CREATE TABLE IF NOT EXISTS event_meta (
			event_id BIGINT NOT NULL,
			meta_key VARCHAR(255) NOT NULL,
			meta_value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (event_id, meta_key)
		)`,

		`CREATE TABLE IF NOT EXISTS en_registrations (
			id SERIAL PRIMARY KEY,
			event_id BIGINT NOT NULL,
			user_name VARCHAR(100) NOT NULL,
			user_email VARCHAR(100) NOT NULL,
			registration_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_en_registrations_event_id ON en_registrations(event_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_en_registrations_event_email ON en_registrations(event_id, user_email)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
