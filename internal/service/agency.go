package service

import (
	"context"
	"fmt"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/pricing"
	"voltride-backoffice/internal/repository"
)

type agencyService struct {
	repo repository.AgencyRepository
	mutations
}

func NewAgencyService(repo repository.AgencyRepository, catalog *Catalog, journal repository.JournalRepository) AgencyService {
	return &agencyService{repo: repo, mutations: newMutations(catalog, journal)}
}

func (s *agencyService) List(ctx context.Context) ([]domain.Agency, error) {
	snap := s.catalog.Snapshot()
	if err := snap.Failed(ResourceAgencies); err != nil {
		return nil, err
	}
	return snap.Agencies, nil
}

func (s *agencyService) Create(ctx context.Context, a *domain.Agency) (*Result, error) {
	logger.EnterMethod("agencyService.Create", "code", a.Code)

	prepared, err := s.prepare(*a, "")
	if err != nil {
		logger.ExitMethodWithError("agencyService.Create", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("agencyService.Create", err)
		return nil, fmt.Errorf("create agency: %w", err)
	}
	*a = prepared

	logger.ExitMethod("agencyService.Create", "agencyID", a.ID)
	return s.commit(ctx, "agency", a.ID, domain.JournalCreate, a), nil
}

func (s *agencyService) Update(ctx context.Context, a *domain.Agency) (*Result, error) {
	logger.EnterMethod("agencyService.Update", "agencyID", a.ID)

	prepared, err := s.prepare(*a, a.ID)
	if err != nil {
		logger.ExitMethodWithError("agencyService.Update", err)
		return nil, err
	}
	if err := s.repo.Update(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("agencyService.Update", err)
		return nil, fmt.Errorf("update agency %s: %w", a.ID, err)
	}
	*a = prepared

	logger.ExitMethod("agencyService.Update", "agencyID", a.ID)
	return s.commit(ctx, "agency", a.ID, domain.JournalUpdate, a), nil
}

func (s *agencyService) Delete(ctx context.Context, id string) (*Result, error) {
	logger.EnterMethod("agencyService.Delete", "agencyID", id)

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceAgencies, ResourceBookings); err != nil {
		return nil, err
	}
	if _, ok := snap.Agency(id); !ok {
		return nil, fmt.Errorf("agency %s: %w", id, domain.ErrNotFound)
	}
	for _, b := range snap.Bookings {
		if b.AgencyID == id {
			return nil, fmt.Errorf("agency %s still has bookings: %w", id, domain.ErrConflict)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("agencyService.Delete", err)
		return nil, fmt.Errorf("delete agency %s: %w", id, err)
	}

	logger.ExitMethod("agencyService.Delete", "agencyID", id)
	return s.commit(ctx, "agency", id, domain.JournalDelete, nil), nil
}

// prepare applies the commission write rule and validates the agency for the
// catalog brand. existingID is empty on create.
func (s *agencyService) prepare(a domain.Agency, existingID string) (domain.Agency, error) {
	brand := s.catalog.Brand()
	if a.Brand == "" {
		a.Brand = brand
	}
	a = pricing.NormalizeAgency(a)

	verr := &domain.ValidationError{}
	if err := verr.Merge(domain.Check(a)); err != nil {
		return a, err
	}
	if a.Brand != brand {
		verr.Add("brand", "must be "+brand)
	}

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceAgencies); err != nil {
		return a, err
	}
	if existingID != "" {
		if _, ok := snap.Agency(existingID); !ok {
			return a, fmt.Errorf("agency %s: %w", existingID, domain.ErrNotFound)
		}
	}
	for _, other := range snap.Agencies {
		if other.ID != existingID && a.Code != "" && other.Code == a.Code {
			verr.Add("code", "already used by another agency")
		}
	}
	return a, verr.OrNil()
}
