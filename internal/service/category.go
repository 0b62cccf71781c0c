package service

import (
	"context"
	"fmt"
	"strings"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

type categoryService struct {
	repo repository.CategoryRepository
	mutations
}

func NewCategoryService(repo repository.CategoryRepository, catalog *Catalog, journal repository.JournalRepository) CategoryService {
	return &categoryService{repo: repo, mutations: newMutations(catalog, journal)}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	snap := s.catalog.Snapshot()
	if err := snap.Failed(ResourceCategories); err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) (*Result, error) {
	logger.EnterMethod("categoryService.Create", "code", c.Code)

	prepared, warnings, err := s.prepare(*c, "")
	if err != nil {
		logger.ExitMethodWithError("categoryService.Create", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("categoryService.Create", err)
		return nil, fmt.Errorf("create category: %w", err)
	}
	*c = prepared

	logger.ExitMethod("categoryService.Create", "categoryID", c.ID)
	res := s.commit(ctx, "category", c.ID, domain.JournalCreate, c)
	res.Warnings = warnings
	return res, nil
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) (*Result, error) {
	logger.EnterMethod("categoryService.Update", "categoryID", c.ID)

	prepared, warnings, err := s.prepare(*c, c.ID)
	if err != nil {
		logger.ExitMethodWithError("categoryService.Update", err)
		return nil, err
	}
	if err := s.repo.Update(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("categoryService.Update", err)
		return nil, fmt.Errorf("update category %s: %w", c.ID, err)
	}
	*c = prepared

	logger.ExitMethod("categoryService.Update", "categoryID", c.ID)
	res := s.commit(ctx, "category", c.ID, domain.JournalUpdate, c)
	res.Warnings = warnings
	return res, nil
}

// Delete refuses categories that still hold vehicles.
func (s *categoryService) Delete(ctx context.Context, id string) (*Result, error) {
	logger.EnterMethod("categoryService.Delete", "categoryID", id)

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceCategories, ResourceVehicles); err != nil {
		return nil, err
	}
	cat, ok := snap.Category(id)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	inUse := cat.VehicleCount
	for _, v := range snap.Vehicles {
		if v.CategoryID == id {
			inUse++
		}
	}
	if inUse > 0 {
		return nil, fmt.Errorf("category %s still has vehicles: %w", id, domain.ErrConflict)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("categoryService.Delete", err)
		return nil, fmt.Errorf("delete category %s: %w", id, err)
	}

	logger.ExitMethod("categoryService.Delete", "categoryID", id)
	return s.commit(ctx, "category", id, domain.JournalDelete, nil), nil
}

func (s *categoryService) prepare(c domain.Category, existingID string) (domain.Category, []string, error) {
	brand := s.catalog.Brand()
	if c.Brand == "" {
		c.Brand = brand
	}
	c.Code = strings.TrimSpace(c.Code)

	verr := &domain.ValidationError{}
	if err := verr.Merge(domain.Check(c)); err != nil {
		return c, nil, err
	}
	if c.Brand != brand {
		verr.Add("brand", "must be "+brand)
	}

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceCategories); err != nil {
		return c, nil, err
	}
	if existingID != "" {
		if _, ok := snap.Category(existingID); !ok {
			return c, nil, fmt.Errorf("category %s: %w", existingID, domain.ErrNotFound)
		}
	}
	for _, other := range snap.Categories {
		if other.ID != existingID && c.Code != "" && strings.EqualFold(other.Code, c.Code) {
			verr.Add("code", "already used in this brand")
			break
		}
	}

	var warnings []string
	if !c.FeeConfigured() {
		warnings = append(warnings, "no booking fee configured: quotes for this category carry no fee")
	}
	return c, warnings, verr.OrNil()
}
