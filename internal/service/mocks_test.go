package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/repository"
)

// MockAgencyRepo
type MockAgencyRepo struct {
	mock.Mock
}

func (m *MockAgencyRepo) List(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}
func (m *MockAgencyRepo) Create(ctx context.Context, a *domain.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgencyRepo) Update(ctx context.Context, a *domain.Agency) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgencyRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOptionRepo
type MockOptionRepo struct {
	mock.Mock
}

func (m *MockOptionRepo) List(ctx context.Context) ([]domain.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Option), args.Error(1)
}
func (m *MockOptionRepo) Create(ctx context.Context, o *domain.Option) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOptionRepo) Update(ctx context.Context, o *domain.Option) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOptionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) GetWidget(ctx context.Context, brand string) (*domain.WidgetSettings, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WidgetSettings), args.Error(1)
}
func (m *MockSettingsRepo) SaveWidget(ctx context.Context, brand string, s *domain.WidgetSettings) error {
	args := m.Called(ctx, brand, s)
	return args.Error(0)
}
func (m *MockSettingsRepo) GetOperator(ctx context.Context, brand string) (*domain.OperatorSettings, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatorSettings), args.Error(1)
}
func (m *MockSettingsRepo) SaveOperator(ctx context.Context, brand string, s *domain.OperatorSettings) error {
	args := m.Called(ctx, brand, s)
	return args.Error(0)
}
func (m *MockSettingsRepo) GetAccounting(ctx context.Context, brand string) (*domain.AccountingSettings, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingSettings), args.Error(1)
}
func (m *MockSettingsRepo) SaveAccounting(ctx context.Context, brand string, s *domain.AccountingSettings) error {
	args := m.Called(ctx, brand, s)
	return args.Error(0)
}
func (m *MockSettingsRepo) GetEntreprise(ctx context.Context, brand string) (*domain.EntrepriseSettings, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntrepriseSettings), args.Error(1)
}
func (m *MockSettingsRepo) SaveEntreprise(ctx context.Context, brand string, s *domain.EntrepriseSettings) error {
	args := m.Called(ctx, brand, s)
	return args.Error(0)
}
func (m *MockSettingsRepo) GetLegalTexts(ctx context.Context, brand string) (*domain.LegalTexts, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalTexts), args.Error(1)
}
func (m *MockSettingsRepo) SaveLegalTexts(ctx context.Context, brand string, t *domain.LegalTexts) error {
	args := m.Called(ctx, brand, t)
	return args.Error(0)
}

// MockNotificationSettingsRepo
type MockNotificationSettingsRepo struct {
	mock.Mock
}

func (m *MockNotificationSettingsRepo) List(ctx context.Context, brand string) ([]domain.NotificationSetting, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationSetting), args.Error(1)
}
func (m *MockNotificationSettingsRepo) Save(ctx context.Context, s *domain.NotificationSetting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockJournalRepo
type MockJournalRepo struct {
	mock.Mock
}

func (m *MockJournalRepo) Record(ctx context.Context, e *domain.JournalEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockJournalRepo) List(ctx context.Context, f repository.JournalFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// MockImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, r)
	return args.String(0), args.Error(1)
}

// catalogMocks bundles the repositories behind a Catalog.
type catalogMocks struct {
	agencies   *MockAgencyRepo
	categories *MockCategoryRepo
	vehicles   *MockVehicleRepo
	options    *MockOptionRepo
	bookings   *MockBookingRepo
}

func newCatalogMocks() *catalogMocks {
	return &catalogMocks{
		agencies:   new(MockAgencyRepo),
		categories: new(MockCategoryRepo),
		vehicles:   new(MockVehicleRepo),
		options:    new(MockOptionRepo),
		bookings:   new(MockBookingRepo),
	}
}

func (m *catalogMocks) repos() CatalogRepositories {
	return CatalogRepositories{
		Agencies:   m.agencies,
		Categories: m.categories,
		Vehicles:   m.vehicles,
		Options:    m.options,
		Bookings:   m.bookings,
	}
}

// serve makes every List call return the fixture.
func (m *catalogMocks) serve(f fixture) {
	m.agencies.On("List", mock.Anything).Return(f.agencies, nil)
	m.categories.On("List", mock.Anything).Return(f.categories, nil)
	m.vehicles.On("List", mock.Anything).Return(f.vehicles, nil)
	m.options.On("List", mock.Anything).Return(f.options, nil)
	m.bookings.On("List", mock.Anything).Return(f.bookings, nil)
}
