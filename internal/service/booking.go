package service

import (
	"context"
	"sort"

	"voltride-backoffice/internal/domain"
)

type bookingService struct {
	catalog *Catalog
}

// NewBookingService serves the brand's bookings from the catalog. Bookings
// are read-only here.
func NewBookingService(catalog *Catalog) BookingService {
	return &bookingService{catalog: catalog}
}

// List returns matching bookings, most recent start first.
func (s *bookingService) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	snap := s.catalog.Snapshot()
	if err := snap.Failed(ResourceBookings); err != nil {
		return nil, err
	}
	out := filterBookings(snap.Bookings, f)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func filterBookings(bookings []domain.Booking, f BookingFilter) []domain.Booking {
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.AgencyID != "" && b.AgencyID != f.AgencyID {
			continue
		}
		if !f.From.IsZero() && b.EndDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !b.EndDate.Before(f.To) {
			continue
		}
		out = append(out, b)
	}
	return out
}
