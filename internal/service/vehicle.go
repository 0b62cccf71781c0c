package service

import (
	"context"
	"fmt"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

const warnNonMonotonic = "pricing: total price drops for a longer rental"

type vehicleService struct {
	repo repository.VehicleRepository
	mutations
}

func NewVehicleService(repo repository.VehicleRepository, catalog *Catalog, journal repository.JournalRepository) VehicleService {
	return &vehicleService{repo: repo, mutations: newMutations(catalog, journal)}
}

func (s *vehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	snap := s.catalog.Snapshot()
	if err := snap.Failed(ResourceVehicles); err != nil {
		return nil, err
	}
	return snap.Vehicles, nil
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) (*Result, error) {
	logger.EnterMethod("vehicleService.Create", "sku", v.SKU)

	prepared, warnings, err := s.prepare(*v, "")
	if err != nil {
		logger.ExitMethodWithError("vehicleService.Create", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("vehicleService.Create", err)
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	*v = prepared

	logger.ExitMethod("vehicleService.Create", "vehicleID", v.ID)
	res := s.commit(ctx, "vehicle", v.ID, domain.JournalCreate, v)
	res.Warnings = warnings
	return res, nil
}

func (s *vehicleService) Update(ctx context.Context, v *domain.Vehicle) (*Result, error) {
	logger.EnterMethod("vehicleService.Update", "vehicleID", v.ID)

	prepared, warnings, err := s.prepare(*v, v.ID)
	if err != nil {
		logger.ExitMethodWithError("vehicleService.Update", err)
		return nil, err
	}
	if err := s.repo.Update(ctx, &prepared); err != nil {
		logger.ExitMethodWithError("vehicleService.Update", err)
		return nil, fmt.Errorf("update vehicle %s: %w", v.ID, err)
	}
	*v = prepared

	logger.ExitMethod("vehicleService.Update", "vehicleID", v.ID)
	res := s.commit(ctx, "vehicle", v.ID, domain.JournalUpdate, v)
	res.Warnings = warnings
	return res, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string) (*Result, error) {
	logger.EnterMethod("vehicleService.Delete", "vehicleID", id)

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceVehicles); err != nil {
		return nil, err
	}
	if _, ok := snap.Vehicle(id); !ok {
		return nil, fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("vehicleService.Delete", err)
		return nil, fmt.Errorf("delete vehicle %s: %w", id, err)
	}

	logger.ExitMethod("vehicleService.Delete", "vehicleID", id)
	return s.commit(ctx, "vehicle", id, domain.JournalDelete, nil), nil
}

// prepare checks the vehicle against the brand's categories and attaches the
// category it now belongs to.
func (s *vehicleService) prepare(v domain.Vehicle, existingID string) (domain.Vehicle, []string, error) {
	verr := &domain.ValidationError{}
	if err := verr.Merge(domain.Check(v)); err != nil {
		return v, nil, err
	}

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceCategories, ResourceVehicles); err != nil {
		return v, nil, err
	}
	if existingID != "" {
		if _, ok := snap.Vehicle(existingID); !ok {
			return v, nil, fmt.Errorf("vehicle %s: %w", existingID, domain.ErrNotFound)
		}
	}
	if v.CategoryID != "" {
		cat, ok := snap.Category(v.CategoryID)
		if !ok {
			verr.Add("categoryId", "must be a category of "+s.catalog.Brand())
		} else {
			v.Category = &cat
			v.Brand = cat.Brand
		}
	}

	var warnings []string
	if !v.Pricing.IsMonotonic() {
		warnings = append(warnings, warnNonMonotonic)
	}
	return v, warnings, verr.OrNil()
}
