// Package history records pipeline run events in the database, when one is
// available. Recording is strictly best-effort: a CI run must never fail
// because its own bookkeeping did.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"
)

// Event is one recorded pipeline occurrence: a stage finishing, a task
// completing, a hook firing.
type Event struct {
	RunID    string
	Stage    string
	Status   string
	Duration time.Duration
	Message  string
	// Detail carries free-form context (branch, image tag, artifact dir).
	Detail map[string]string
}

// Store handles run-event persistence to database
type Store struct {
	db *sql.DB
}

// NewStore creates a store from DATABASE_URL.
// Returns nil if DATABASE_URL is not set (history disabled).
func NewStore() (*Store, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
// Useful for testing with sqlmock
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists a run event. Calling Save on a nil store is a no-op so
// callers never need to branch on whether history is enabled.
func (s *Store) Save(event Event) error {
	if s == nil || s.db == nil {
		return nil
	}

	hostname, _ := os.Hostname()

	detailJSON, err := json.Marshal(event.Detail)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO run_events (run_id, stage, status, duration_ms, hostname, procid, detail, message, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.RunID,
		event.Stage,
		event.Status,
		event.Duration.Milliseconds(),
		hostname,
		os.Getpid(),
		detailJSON,
		event.Message,
		time.Now().UTC(),
	)

	return err
}

// EnsureSchema creates the run_events table if it does not exist. The table
// lives outside the migration set on purpose: resetting the appointment
// schema must not wipe run history.
func (s *Store) EnsureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS run_events (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			stage TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ms BIGINT NOT NULL,
			hostname TEXT,
			procid INT,
			detail JSONB,
			message TEXT,
			recorded_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

// DB returns the underlying database connection (for testing)
func (s *Store) DB() *sql.DB {
	return s.db
}
