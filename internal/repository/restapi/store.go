package restapi

import "voltride-backoffice/internal/repository"

// Store groups every repository served by the remote record API.
type Store struct {
	repository.AgencyRepository
	repository.CategoryRepository
	repository.VehicleRepository
	repository.OptionRepository
	repository.BookingRepository
	repository.SettingsRepository
	repository.NotificationSettingsRepository
}

func NewStore(c *Client) *Store {
	return &Store{
		AgencyRepository:               NewAgencyRepository(c),
		CategoryRepository:             NewCategoryRepository(c),
		VehicleRepository:              NewVehicleRepository(c),
		OptionRepository:               NewOptionRepository(c),
		BookingRepository:              NewBookingRepository(c),
		SettingsRepository:             NewSettingsRepository(c),
		NotificationSettingsRepository: NewNotificationSettingsRepository(c),
	}
}
