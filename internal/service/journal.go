package service

import (
	"context"
	"encoding/json"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

// mutations is shared by the record services: every successful write is
// journaled, then the catalog is reloaded.
type mutations struct {
	catalog *Catalog
	journaler
}

func newMutations(catalog *Catalog, journal repository.JournalRepository) mutations {
	return mutations{catalog: catalog, journaler: journaler{repo: journal, brand: catalog.Brand()}}
}

// journaler writes audit entries for one brand.
type journaler struct {
	repo  repository.JournalRepository // nil when the journal is disabled
	brand string
}

func (m mutations) commit(ctx context.Context, entity, id string, action domain.JournalAction, payload any) *Result {
	m.record(ctx, entity, id, action, payload)

	snap, err := m.catalog.Reload(ctx)
	if err != nil {
		// The write went through; the caller still gets the partial view.
		logger.WarnContext(ctx, "Reload after write incomplete", "entity", entity, "id", id, "error", err)
	}
	return &Result{Snapshot: snap}
}

// record never fails the write it describes.
func (j journaler) record(ctx context.Context, entity, id string, action domain.JournalAction, payload any) {
	if j.repo == nil {
		return
	}
	entry := &domain.JournalEntry{
		Entity:    entity,
		EntityID:  id,
		Action:    action,
		Brand:     j.brand,
		RequestID: logger.RequestID(ctx),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.WarnContext(ctx, "Journal payload not encodable", "entity", entity, "error", err)
		} else {
			entry.Payload = data
		}
	}
	if err := j.repo.Record(ctx, entry); err != nil {
		logger.WarnContext(ctx, "Failed to journal action", "entity", entity, "id", id, "action", action, "error", err)
	}
}

type journalService struct {
	repo  repository.JournalRepository
	brand string
}

// NewJournalService lists the brand's journal. A nil repository yields an
// empty listing.
func NewJournalService(repo repository.JournalRepository, brand string) JournalService {
	return &journalService{repo: repo, brand: brand}
}

func (s *journalService) List(ctx context.Context, filter repository.JournalFilter) ([]domain.JournalEntry, error) {
	if s.repo == nil {
		return []domain.JournalEntry{}, nil
	}
	filter.Brand = s.brand
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}
