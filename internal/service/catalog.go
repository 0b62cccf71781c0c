package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

const (
	ResourceAgencies   = "agencies"
	ResourceCategories = "categories"
	ResourceVehicles   = "vehicles"
	ResourceOptions    = "options"
	ResourceBookings   = "bookings"
)

// Snapshot is the brand's view of every record collection, as of one load.
// A resource that failed to load is empty and listed in Errors.
type Snapshot struct {
	Brand      string            `json:"brand"`
	Agencies   []domain.Agency   `json:"agencies"`
	Categories []domain.Category `json:"categories"`
	Vehicles   []domain.Vehicle  `json:"vehicles"`
	Options    []domain.Option   `json:"options"`
	Bookings   []domain.Booking  `json:"bookings"`
	Errors     map[string]string `json:"errors,omitempty"`
	LoadedAt   time.Time         `json:"loadedAt"`

	failed map[string]error
}

func newSnapshot(brand string) *Snapshot {
	return &Snapshot{
		Brand:      brand,
		Agencies:   []domain.Agency{},
		Categories: []domain.Category{},
		Vehicles:   []domain.Vehicle{},
		Options:    []domain.Option{},
		Bookings:   []domain.Booking{},
		failed:     map[string]error{},
	}
}

func (s *Snapshot) fail(resource string, err error) {
	if s.Errors == nil {
		s.Errors = map[string]string{}
	}
	s.Errors[resource] = err.Error()
	s.failed[resource] = err
}

// Failed returns the load error of resource, or nil.
func (s *Snapshot) Failed(resource string) error {
	return s.failed[resource]
}

// Err joins every resource failure.
func (s *Snapshot) Err() error {
	var errs []error
	for _, r := range []string{ResourceAgencies, ResourceCategories, ResourceVehicles, ResourceOptions, ResourceBookings} {
		if err := s.failed[r]; err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r, err))
		}
	}
	return errors.Join(errs...)
}

// require fails when one of resources is not loaded; writes that depend on
// them are refused instead of checked against missing data.
func (s *Snapshot) require(resources ...string) error {
	if s.LoadedAt.IsZero() {
		return fmt.Errorf("catalog not loaded yet: %w", domain.ErrUpstream)
	}
	for _, r := range resources {
		if err := s.failed[r]; err != nil {
			return fmt.Errorf("%s unavailable: %w", r, err)
		}
	}
	return nil
}

func (s *Snapshot) Agency(id string) (domain.Agency, bool) {
	for _, a := range s.Agencies {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Agency{}, false
}

func (s *Snapshot) Category(id string) (domain.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (s *Snapshot) Vehicle(id string) (domain.Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

func (s *Snapshot) Option(id string) (domain.Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Option{}, false
}

// CatalogRepositories are the collections loaded on every reload.
type CatalogRepositories struct {
	Agencies   repository.AgencyRepository
	Categories repository.CategoryRepository
	Vehicles   repository.VehicleRepository
	Options    repository.OptionRepository
	Bookings   repository.BookingRepository
}

// Catalog holds the current snapshot of one brand. Reload replaces it as a
// whole; readers never see a half-loaded state.
type Catalog struct {
	brand string
	repos CatalogRepositories
	now   func() time.Time

	mu      sync.RWMutex
	current *Snapshot
	applied uint64
	started uint64
}

func NewCatalog(brand string, repos CatalogRepositories) *Catalog {
	return &Catalog{
		brand:   brand,
		repos:   repos,
		now:     time.Now,
		current: newSnapshot(brand),
	}
}

func (c *Catalog) Brand() string { return c.brand }

// Snapshot returns the last loaded snapshot. It must not be modified.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Reload reads the five collections concurrently, waits for all of them and
// swaps the snapshot in. The returned error joins per-resource failures; the
// snapshot is installed either way.
func (c *Catalog) Reload(ctx context.Context) (*Snapshot, error) {
	logger.EnterMethod("Catalog.Reload", "brand", c.brand)

	c.mu.Lock()
	c.started++
	seq := c.started
	c.mu.Unlock()

	var (
		agencies   []domain.Agency
		categories []domain.Category
		vehicles   []domain.Vehicle
		options    []domain.Option
		bookings   []domain.Booking
		errs       = make(map[string]error, 5)
		errMu      sync.Mutex
	)
	record := func(resource string, err error) {
		if err == nil {
			return
		}
		errMu.Lock()
		errs[resource] = err
		errMu.Unlock()
	}

	// Failures are collected per resource; one failing read must not cancel
	// the others.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		agencies, err = c.repos.Agencies.List(ctx)
		record(ResourceAgencies, err)
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = c.repos.Categories.List(ctx)
		record(ResourceCategories, err)
		return nil
	})
	g.Go(func() error {
		var err error
		vehicles, err = c.repos.Vehicles.List(ctx)
		record(ResourceVehicles, err)
		return nil
	})
	g.Go(func() error {
		var err error
		options, err = c.repos.Options.List(ctx)
		record(ResourceOptions, err)
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = c.repos.Bookings.List(ctx)
		record(ResourceBookings, err)
		return nil
	})
	_ = g.Wait()

	snap := c.shape(agencies, categories, vehicles, options, bookings, errs)

	c.mu.Lock()
	// A slower, older reload never overwrites a newer one.
	if seq > c.applied {
		c.current = snap
		c.applied = seq
	} else {
		snap = c.current
	}
	c.mu.Unlock()

	if err := snap.Err(); err != nil {
		logger.WarnContext(ctx, "Catalog reloaded with failures", "brand", c.brand, "error", err)
		logger.ExitMethodWithError("Catalog.Reload", err)
		return snap, err
	}
	logger.ExitMethod("Catalog.Reload",
		"agencies", len(snap.Agencies), "categories", len(snap.Categories),
		"vehicles", len(snap.Vehicles), "options", len(snap.Options), "bookings", len(snap.Bookings))
	return snap, nil
}

// shape partitions the raw collections by brand.
func (c *Catalog) shape(
	agencies []domain.Agency,
	categories []domain.Category,
	vehicles []domain.Vehicle,
	options []domain.Option,
	bookings []domain.Booking,
	errs map[string]error,
) *Snapshot {
	snap := newSnapshot(c.brand)
	snap.LoadedAt = c.now()

	if err := errs[ResourceAgencies]; err != nil {
		snap.fail(ResourceAgencies, err)
	} else {
		snap.Agencies = domain.FilterByBrand(agencies, c.brand)
	}

	if err := errs[ResourceCategories]; err != nil {
		snap.fail(ResourceCategories, err)
	} else {
		snap.Categories = domain.FilterByBrand(categories, c.brand)
	}

	// Vehicles and options are partitioned through categories, bookings
	// through agencies; without the parent they cannot be attributed.
	switch {
	case errs[ResourceVehicles] != nil:
		snap.fail(ResourceVehicles, errs[ResourceVehicles])
	case errs[ResourceCategories] != nil:
		snap.fail(ResourceVehicles, fmt.Errorf("categories unavailable: %w", domain.ErrUpstream))
	default:
		ids := domain.CategoryIDs(snap.Categories)
		snap.Vehicles = domain.AttachCategories(domain.FilterVehiclesByBrand(vehicles, ids), snap.Categories)
	}

	switch {
	case errs[ResourceOptions] != nil:
		snap.fail(ResourceOptions, errs[ResourceOptions])
	case errs[ResourceCategories] != nil:
		snap.fail(ResourceOptions, fmt.Errorf("categories unavailable: %w", domain.ErrUpstream))
	default:
		snap.Options = filterOptionsByBrand(options, domain.CategoryIDs(snap.Categories))
	}

	switch {
	case errs[ResourceBookings] != nil:
		snap.fail(ResourceBookings, errs[ResourceBookings])
	case errs[ResourceAgencies] != nil:
		snap.fail(ResourceBookings, fmt.Errorf("agencies unavailable: %w", domain.ErrUpstream))
	default:
		snap.Bookings = domain.FilterBookingsByAgencies(bookings, domain.AgencyIDs(snap.Agencies))
	}

	return snap
}

// filterOptionsByBrand keeps options offered for every category and options
// tied to at least one of the brand's categories.
func filterOptionsByBrand(options []domain.Option, brandCategoryIDs map[string]struct{}) []domain.Option {
	out := make([]domain.Option, 0, len(options))
	for _, o := range options {
		if len(o.AssociatedCategoryIDs) == 0 {
			out = append(out, o)
			continue
		}
		for _, id := range o.AssociatedCategoryIDs {
			if _, ok := brandCategoryIDs[id]; ok {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
