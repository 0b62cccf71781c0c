package service

import (
	"context"
	"fmt"
	"strings"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

type optionService struct {
	repo repository.OptionRepository
	mutations
}

func NewOptionService(repo repository.OptionRepository, catalog *Catalog, journal repository.JournalRepository) OptionService {
	return &optionService{repo: repo, mutations: newMutations(catalog, journal)}
}

func (s *optionService) List(ctx context.Context) ([]domain.Option, error) {
	snap := s.catalog.Snapshot()
	if err := snap.Failed(ResourceOptions); err != nil {
		return nil, err
	}
	return snap.Options, nil
}

func (s *optionService) Create(ctx context.Context, o *domain.Option) (*Result, error) {
	logger.EnterMethod("optionService.Create", "code", o.Code)

	prepared, warnings, err := s.prepare(*o, "")
	if err != nil {
		logger.ExitMethodWithError("optionService.Create", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("optionService.Create", err)
		return nil, fmt.Errorf("create option: %w", err)
	}
	*o = prepared

	logger.ExitMethod("optionService.Create", "optionID", o.ID)
	res := s.commit(ctx, "option", o.ID, domain.JournalCreate, o)
	res.Warnings = warnings
	return res, nil
}

func (s *optionService) Update(ctx context.Context, o *domain.Option) (*Result, error) {
	logger.EnterMethod("optionService.Update", "optionID", o.ID)

	prepared, warnings, err := s.prepare(*o, o.ID)
	if err != nil {
		logger.ExitMethodWithError("optionService.Update", err)
		return nil, err
	}
	if err := s.repo.Update(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("optionService.Update", err)
		return nil, fmt.Errorf("update option %s: %w", o.ID, err)
	}
	*o = prepared

	logger.ExitMethod("optionService.Update", "optionID", o.ID)
	res := s.commit(ctx, "option", o.ID, domain.JournalUpdate, o)
	res.Warnings = warnings
	return res, nil
}

func (s *optionService) Delete(ctx context.Context, id string) (*Result, error) {
	logger.EnterMethod("optionService.Delete", "optionID", id)

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceOptions); err != nil {
		return nil, err
	}
	if _, ok := snap.Option(id); !ok {
		return nil, fmt.Errorf("option %s: %w", id, domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("optionService.Delete", err)
		return nil, fmt.Errorf("delete option %s: %w", id, err)
	}

	logger.ExitMethod("optionService.Delete", "optionID", id)
	return s.commit(ctx, "option", id, domain.JournalDelete, nil), nil
}

func (s *optionService) prepare(o domain.Option, existingID string) (domain.Option, []string, error) {
	o.Code = strings.TrimSpace(o.Code)

	verr := &domain.ValidationError{}
	if err := verr.Merge(domain.Check(o)); err != nil {
		return o, nil, err
	}

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceCategories, ResourceOptions); err != nil {
		return o, nil, err
	}
	if existingID != "" {
		if _, ok := snap.Option(existingID); !ok {
			return o, nil, fmt.Errorf("option %s: %w", existingID, domain.ErrNotFound)
		}
	}
	seen := make(map[string]bool, len(o.AssociatedCategoryIDs))
	ids := make([]string, 0, len(o.AssociatedCategoryIDs))
	for _, id := range o.AssociatedCategoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := snap.Category(id); !ok {
			verr.Add("associatedCategoryIds", fmt.Sprintf("category %s is not a category of %s", id, s.catalog.Brand()))
		}
		ids = append(ids, id)
	}
	o.AssociatedCategoryIDs = ids

	for _, other := range snap.Options {
		if other.ID != existingID && o.Code != "" && strings.EqualFold(other.Code, o.Code) {
			verr.Add("code", "already used by another option")
			break
		}
	}

	var warnings []string
	if !o.Pricing.IsMonotonic() {
		warnings = append(warnings, warnNonMonotonic)
	}
	return o, warnings, verr.OrNil()
}
