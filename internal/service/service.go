package service

import (
	"context"
	"io"
	"time"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/pricing"
	"voltride-backoffice/internal/repository"
)

// Result is returned by every record mutation: the catalog as reloaded after
// the write, plus non-blocking warnings about the submitted record.
type Result struct {
	Snapshot *Snapshot `json:"snapshot"`
	Warnings []string  `json:"warnings,omitempty"`
}

type AgencyService interface {
	List(ctx context.Context) ([]domain.Agency, error)
	Create(ctx context.Context, agency *domain.Agency) (*Result, error)
	Update(ctx context.Context, agency *domain.Agency) (*Result, error)
	Delete(ctx context.Context, id string) (*Result, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*Result, error)
	Update(ctx context.Context, category *domain.Category) (*Result, error)
	Delete(ctx context.Context, id string) (*Result, error)
}

type VehicleService interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) (*Result, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*Result, error)
	Delete(ctx context.Context, id string) (*Result, error)
}

type OptionService interface {
	List(ctx context.Context) ([]domain.Option, error)
	Create(ctx context.Context, option *domain.Option) (*Result, error)
	Update(ctx context.Context, option *domain.Option) (*Result, error)
	Delete(ctx context.Context, id string) (*Result, error)
}

// BookingFilter narrows a booking listing. Zero values match everything.
// From (inclusive) and To (exclusive) bound the booking end date.
type BookingFilter struct {
	Status   domain.BookingStatus
	AgencyID string
	From     time.Time
	To       time.Time
}

type BookingService interface {
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
}

// QuoteRequest prices a rental of one vehicle. When PickupAt and ReturnAt
// are both set they replace Days and ExtraHours.
type QuoteRequest struct {
	VehicleID  string         `json:"vehicleId"`
	Days       int            `json:"days"`
	ExtraHours int            `json:"extraHours"`
	PickupAt   *time.Time     `json:"pickupAt,omitempty"`
	ReturnAt   *time.Time     `json:"returnAt,omitempty"`
	Options    map[string]int `json:"options"`
	Lang       domain.Lang    `json:"lang"`
}

type QuoteService interface {
	Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error)
}

type SettingsService interface {
	Load(ctx context.Context) (*domain.BrandSettings, error)
	Widget(ctx context.Context) (domain.WidgetSettings, error)
	Operator(ctx context.Context) (domain.OperatorSettings, error)
	Accounting(ctx context.Context) (domain.AccountingSettings, error)
	Entreprise(ctx context.Context) (domain.EntrepriseSettings, error)
	SaveWidget(ctx context.Context, s *domain.WidgetSettings) error
	SaveOperator(ctx context.Context, s *domain.OperatorSettings) error
	SaveAccounting(ctx context.Context, s *domain.AccountingSettings) error
	SaveEntreprise(ctx context.Context, s *domain.EntrepriseSettings) error
	SaveLegalTexts(ctx context.Context, t *domain.LegalTexts) error
	SaveNotifications(ctx context.Context, settings []domain.NotificationSetting) ([]domain.NotificationSetting, error)
}

type ImageService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error)
}

type JournalService interface {
	List(ctx context.Context, filter repository.JournalFilter) ([]domain.JournalEntry, error)
}

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is one outgoing message.
type Email struct {
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

type EmailService interface {
	Send(ctx context.Context, email Email) error
}
