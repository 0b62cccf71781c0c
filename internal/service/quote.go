package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/pricing"
)

type quoteService struct {
	catalog  *Catalog
	settings SettingsService
}

// NewQuoteService prices rentals from the loaded catalog under the brand's
// widget settings.
func NewQuoteService(catalog *Catalog, settings SettingsService) QuoteService {
	return &quoteService{catalog: catalog, settings: settings}
}

func (s *quoteService) Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	switch {
	case req.PickupAt != nil && req.ReturnAt != nil:
		days, extraHours, err := pricing.RentalPeriod(*req.PickupAt, *req.ReturnAt)
		if err != nil {
			return nil, err
		}
		req.Days, req.ExtraHours = days, extraHours
	case req.PickupAt != nil:
		return nil, domain.Invalid("returnAt", "is required with pickupAt")
	case req.ReturnAt != nil:
		return nil, domain.Invalid("pickupAt", "is required with returnAt")
	}
	logger.EnterMethod("quoteService.Quote", "vehicleID", req.VehicleID, "days", req.Days, "extraHours", req.ExtraHours)

	widget, err := s.settings.Widget(ctx)
	if err != nil {
		logger.ExitMethodWithError("quoteService.Quote", err)
		return nil, fmt.Errorf("load widget settings: %w", err)
	}
	if req.Days < widget.MinRentalDays {
		return nil, domain.Invalid("days", fmt.Sprintf("must be >= %d", widget.MinRentalDays))
	}
	if widget.MaxRentalDays > 0 && req.Days > widget.MaxRentalDays {
		return nil, domain.Invalid("days", fmt.Sprintf("must be <= %d", widget.MaxRentalDays))
	}

	snap := s.catalog.Snapshot()
	if err := snap.require(ResourceCategories, ResourceVehicles, ResourceOptions); err != nil {
		return nil, err
	}
	vehicle, ok := snap.Vehicle(req.VehicleID)
	if !ok {
		return nil, fmt.Errorf("vehicle %s: %w", req.VehicleID, domain.ErrNotFound)
	}
	category, ok := snap.Category(vehicle.CategoryID)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", vehicle.CategoryID, domain.ErrNotFound)
	}

	q, err := pricing.BuildQuote(pricing.QuoteInput{
		Vehicle:    vehicle,
		Category:   category,
		Options:    snap.Options,
		Selections: req.Options,
		Days:       req.Days,
		ExtraHours: req.ExtraHours,
		Lang:       req.Lang,
	})
	if err != nil {
		logger.ExitMethodWithError("quoteService.Quote", err)
		return nil, err
	}
	if !widget.BookingFeeEnabled {
		q.BookingFee = decimal.Zero
		q.BalanceDue = q.Subtotal
	}

	logger.ExitMethod("quoteService.Quote", "subtotal", q.Subtotal.String(), "fee", q.BookingFee.String())
	return &q, nil
}
