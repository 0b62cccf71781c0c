package repository

import (
	"context"
	"time"

	"voltride-backoffice/internal/domain"
)

// AgencyRepository lists and writes agencies across every brand.
type AgencyRepository interface {
	List(ctx context.Context) ([]domain.Agency, error)
	Create(ctx context.Context, agency *domain.Agency) error
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// VehicleRepository returns vehicles without a brand; callers attach it from
// the category join.
type VehicleRepository interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type OptionRepository interface {
	List(ctx context.Context) ([]domain.Option, error)
	Create(ctx context.Context, option *domain.Option) error
	Update(ctx context.Context, option *domain.Option) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
}

// SettingsRepository reads and upserts the per-brand settings documents.
// Getters return domain.ErrNotFound when the document was never saved.
type SettingsRepository interface {
	GetWidget(ctx context.Context, brand string) (*domain.WidgetSettings, error)
	SaveWidget(ctx context.Context, brand string, s *domain.WidgetSettings) error
	GetOperator(ctx context.Context, brand string) (*domain.OperatorSettings, error)
	SaveOperator(ctx context.Context, brand string, s *domain.OperatorSettings) error
	GetAccounting(ctx context.Context, brand string) (*domain.AccountingSettings, error)
	SaveAccounting(ctx context.Context, brand string, s *domain.AccountingSettings) error
	GetEntreprise(ctx context.Context, brand string) (*domain.EntrepriseSettings, error)
	SaveEntreprise(ctx context.Context, brand string, s *domain.EntrepriseSettings) error
	GetLegalTexts(ctx context.Context, brand string) (*domain.LegalTexts, error)
	SaveLegalTexts(ctx context.Context, brand string, t *domain.LegalTexts) error
}

type NotificationSettingsRepository interface {
	List(ctx context.Context, brand string) ([]domain.NotificationSetting, error)
	Save(ctx context.Context, setting *domain.NotificationSetting) error
}

// JournalFilter narrows a journal listing. Zero values match everything.
type JournalFilter struct {
	Entity string
	Brand  string
	Since  time.Time
	Limit  int
}

type JournalRepository interface {
	Record(ctx context.Context, entry *domain.JournalEntry) error
	List(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)
}
