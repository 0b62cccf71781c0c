package restapi

import (
	"context"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/repository"
)

type agencyRepository struct {
	res resource[domain.Agency, agencyDTO]
}

func NewAgencyRepository(c *Client) repository.AgencyRepository {
	return &agencyRepository{res: resource[domain.Agency, agencyDTO]{client: c, path: "/api/agencies", name: "agency"}}
}

func (r *agencyRepository) List(ctx context.Context) ([]domain.Agency, error) {
	return r.res.list(ctx)
}

func (r *agencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	dto := toAgencyDTO(*a)
	dto.ID = ""
	stored, err := r.res.create(ctx, dto)
	if err != nil {
		return err
	}
	if stored != nil {
		*a = *stored
	}
	return nil
}

func (r *agencyRepository) Update(ctx context.Context, a *domain.Agency) error {
	stored, err := r.res.update(ctx, a.ID, toAgencyDTO(*a))
	if err != nil {
		return err
	}
	if stored != nil {
		*a = *stored
	}
	return nil
}

func (r *agencyRepository) Delete(ctx context.Context, id string) error {
	return r.res.delete(ctx, id)
}

type categoryRepository struct {
	res resource[domain.Category, categoryDTO]
}

func NewCategoryRepository(c *Client) repository.CategoryRepository {
	return &categoryRepository{res: resource[domain.Category, categoryDTO]{client: c, path: "/api/categories", name: "category"}}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.res.list(ctx)
}

func (r *categoryRepository) Create(ctx context.Context, cat *domain.Category) error {
	dto := toCategoryDTO(*cat)
	dto.ID = ""
	stored, err := r.res.create(ctx, dto)
	if err != nil {
		return err
	}
	if stored != nil {
		*cat = *stored
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, cat *domain.Category) error {
	stored, err := r.res.update(ctx, cat.ID, toCategoryDTO(*cat))
	if err != nil {
		return err
	}
	if stored != nil {
		*cat = *stored
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.res.delete(ctx, id)
}

type vehicleRepository struct {
	res resource[domain.Vehicle, vehicleDTO]
}

func NewVehicleRepository(c *Client) repository.VehicleRepository {
	return &vehicleRepository{res: resource[domain.Vehicle, vehicleDTO]{client: c, path: "/api/vehicles", name: "vehicle"}}
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	return r.res.list(ctx)
}

// Create and Update keep the derived brand and category of the caller's
// copy; the repository does not return them.
func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	dto := toVehicleDTO(*v)
	dto.ID = ""
	stored, err := r.res.create(ctx, dto)
	if err != nil {
		return err
	}
	if stored != nil {
		stored.Brand, stored.Category = v.Brand, v.Category
		*v = *stored
	}
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	stored, err := r.res.update(ctx, v.ID, toVehicleDTO(*v))
	if err != nil {
		return err
	}
	if stored != nil {
		stored.Brand, stored.Category = v.Brand, v.Category
		*v = *stored
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	return r.res.delete(ctx, id)
}

type optionRepository struct {
	res resource[domain.Option, optionDTO]
}

func NewOptionRepository(c *Client) repository.OptionRepository {
	return &optionRepository{res: resource[domain.Option, optionDTO]{client: c, path: "/api/options", name: "option"}}
}

func (r *optionRepository) List(ctx context.Context) ([]domain.Option, error) {
	return r.res.list(ctx)
}

func (r *optionRepository) Create(ctx context.Context, o *domain.Option) error {
	dto := toOptionDTO(*o)
	dto.ID = ""
	stored, err := r.res.create(ctx, dto)
	if err != nil {
		return err
	}
	if stored != nil {
		*o = *stored
	}
	return nil
}

func (r *optionRepository) Update(ctx context.Context, o *domain.Option) error {
	stored, err := r.res.update(ctx, o.ID, toOptionDTO(*o))
	if err != nil {
		return err
	}
	if stored != nil {
		*o = *stored
	}
	return nil
}

func (r *optionRepository) Delete(ctx context.Context, id string) error {
	return r.res.delete(ctx, id)
}

type bookingRepository struct {
	res resource[domain.Booking, bookingDTO]
}

func NewBookingRepository(c *Client) repository.BookingRepository {
	return &bookingRepository{res: resource[domain.Booking, bookingDTO]{client: c, path: "/api/bookings", name: "booking"}}
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.res.list(ctx)
}
