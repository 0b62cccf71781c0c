package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

const defaultJournalLimit = 100

type journalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) repository.JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Record(ctx context.Context, e *domain.JournalEntry) error {
	logger.EnterMethod("journalRepository.Record", "entity", e.Entity, "entityID", e.EntityID, "action", e.Action)

	if e.CreatedOn.IsZero() {
		e.CreatedOn = time.Now().UTC()
	}
	var payload any
	if len(e.Payload) > 0 {
		payload = []byte(e.Payload)
	}

	query := `INSERT INTO action_journal (entity, entity_id, action, brand, request_id, payload, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "action_journal", "entity", e.Entity)

	err := r.db.QueryRowContext(ctx, query, e.Entity, e.EntityID, string(e.Action), e.Brand, e.RequestID, payload, e.CreatedOn).Scan(&e.ID)
	logger.DatabaseResult("INSERT", 1, err, "journalID", e.ID)

	if err != nil {
		logger.ExitMethodWithError("journalRepository.Record", err, "entity", e.Entity)
		return fmt.Errorf("record journal entry: %w", err)
	}
	logger.ExitMethod("journalRepository.Record", "journalID", e.ID)
	return nil
}

func (r *journalRepository) List(ctx context.Context, f repository.JournalFilter) ([]domain.JournalEntry, error) {
	var (
		where []string
		args  []any
	)
	if f.Entity != "" {
		args = append(args, f.Entity)
		where = append(where, fmt.Sprintf("entity = $%d", len(args)))
	}
	if f.Brand != "" {
		args = append(args, f.Brand)
		where = append(where, fmt.Sprintf("brand = $%d", len(args)))
	}
	if !f.Since.IsZero() {
		args = append(args, f.Since)
		where = append(where, fmt.Sprintf("created_on >= $%d", len(args)))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	args = append(args, limit)

	query := `SELECT id, entity, entity_id, action, brand, request_id, payload, created_on FROM action_journal`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC, id DESC LIMIT $%d", len(args))

	logger.DatabaseCall("SELECT", "action_journal", "filters", len(where))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			e       domain.JournalEntry
			action  string
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &action, &e.Brand, &e.RequestID, &payload, &e.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Action = domain.JournalAction(action)
		if len(payload) > 0 {
			e.Payload = payload
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	logger.DatabaseResult("SELECT", int64(len(entries)), nil)
	return entries, nil
}
