package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

// Store groups the repositories backed by PostgreSQL.
type Store struct {
	db *sql.DB
	repository.JournalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		JournalRepository: NewJournalRepository(db),
	}
}

// Open connects and pings the database.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

const schema = `CREATE TABLE IF NOT EXISTS action_journal (
	id          BIGSERIAL PRIMARY KEY,
	entity      TEXT        NOT NULL,
	entity_id   TEXT        NOT NULL DEFAULT '',
	action      TEXT        NOT NULL,
	brand       TEXT        NOT NULL DEFAULT '',
	request_id  TEXT        NOT NULL DEFAULT '',
	payload     JSONB,
	created_on  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS action_journal_entity_idx ON action_journal (entity, created_on DESC)`

// Migrate creates the journal table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("CREATE", "action_journal")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("CREATE", 0, err)
	if err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	return nil
}
