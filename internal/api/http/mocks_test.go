package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/pricing"
	"voltride-backoffice/internal/repository"
	"voltride-backoffice/internal/service"
)

// MockAgencyService
type MockAgencyService struct {
	mock.Mock
}

func (m *MockAgencyService) List(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}
func (m *MockAgencyService) Create(ctx context.Context, a *domain.Agency) (*service.Result, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}
func (m *MockAgencyService) Update(ctx context.Context, a *domain.Agency) (*service.Result, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}
func (m *MockAgencyService) Delete(ctx context.Context, id string) (*service.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) List(ctx context.Context, f service.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockQuoteService
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Quote(ctx context.Context, req service.QuoteRequest) (*pricing.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

// MockSettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Load(ctx context.Context) (*domain.BrandSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrandSettings), args.Error(1)
}
func (m *MockSettingsService) Widget(ctx context.Context) (domain.WidgetSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.WidgetSettings), args.Error(1)
}
func (m *MockSettingsService) Operator(ctx context.Context) (domain.OperatorSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.OperatorSettings), args.Error(1)
}
func (m *MockSettingsService) Accounting(ctx context.Context) (domain.AccountingSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AccountingSettings), args.Error(1)
}
func (m *MockSettingsService) Entreprise(ctx context.Context) (domain.EntrepriseSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.EntrepriseSettings), args.Error(1)
}
func (m *MockSettingsService) SaveWidget(ctx context.Context, s *domain.WidgetSettings) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSettingsService) SaveOperator(ctx context.Context, s *domain.OperatorSettings) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSettingsService) SaveAccounting(ctx context.Context, s *domain.AccountingSettings) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSettingsService) SaveEntreprise(ctx context.Context, s *domain.EntrepriseSettings) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSettingsService) SaveLegalTexts(ctx context.Context, t *domain.LegalTexts) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockSettingsService) SaveNotifications(ctx context.Context, rows []domain.NotificationSetting) ([]domain.NotificationSetting, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationSetting), args.Error(1)
}

// MockImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, size, r)
	return args.String(0), args.Error(1)
}

// MockJournalService
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) List(ctx context.Context, f repository.JournalFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// staticRepo serves a fixed collection to a catalog.
type staticRepo[T any] struct {
	records []T
	err     error
}

func (r staticRepo[T]) List(ctx context.Context) ([]T, error)       { return r.records, r.err }
func (r staticRepo[T]) Create(ctx context.Context, record *T) error { return nil }
func (r staticRepo[T]) Update(ctx context.Context, record *T) error { return nil }
func (r staticRepo[T]) Delete(ctx context.Context, id string) error { return nil }
