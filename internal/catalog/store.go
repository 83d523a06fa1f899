// Package catalog records run history in Postgres: one row per pipeline run
// with its produced/skipped counts. The store is optional; without a DSN every
// operation is a no-op.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Run is one completed pipeline execution.
type Run struct {
	ID         uuid.UUID
	FileKey    string
	Produced   int
	Skipped    int
	Unresolved int
	Overwrites int
	StartedAt  time.Time
	FinishedAt time.Time
}

type Store struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

// NewPostgres connects to the given DSN and verifies the connection.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("catalog: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFromEnv builds a store from the CANOPY_CATALOG_DSN-style DSN, returning
// a nil (disabled) store when the DSN is empty.
func NewFromEnv(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil
	}
	return NewPostgres(dsn)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS canopy_runs (
    id          UUID PRIMARY KEY,
    file_key    TEXT NOT NULL,
    produced    INTEGER NOT NULL,
    skipped     INTEGER NOT NULL,
    unresolved  INTEGER NOT NULL,
    overwrites  INTEGER NOT NULL,
    started_at  TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL
)`)
	})
	return s.schemaErr
}

// Record inserts one run row. A nil store ignores the call.
func (s *Store) Record(ctx context.Context, run Run) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.ensureSchema(ctx); err != nil {
		return fmt.Errorf("catalog: ensure schema: %w", err)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO canopy_runs (id, file_key, produced, skipped, unresolved, overwrites, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.FileKey, run.Produced, run.Skipped, run.Unresolved, run.Overwrites, run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("catalog: insert run: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	_ = s.db.Close()
}
