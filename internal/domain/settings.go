package domain

import "github.com/shopspring/decimal"

// SettingsSection names a brand-scoped settings document in the repository.
type SettingsSection string

const (
	SectionWidget     SettingsSection = "widget"
	SectionOperator   SettingsSection = "operator"
	SectionCompta     SettingsSection = "compta"
	SectionEntreprise SettingsSection = "entreprise"
)

type WidgetSettings struct {
	WidgetURL         string `json:"widgetUrl" validate:"omitempty,url"`
	PrimaryColor      string `json:"primaryColor" validate:"omitempty,hexcolor"`
	ShowPrices        bool   `json:"showPrices"`
	MinRentalDays     int    `json:"minRentalDays" validate:"gte=1"`
	MaxRentalDays     int    `json:"maxRentalDays" validate:"gtefield=MinRentalDays"`
	PaymentEnabled    bool   `json:"paymentEnabled"`
	PaymentProvider   string `json:"paymentProvider,omitempty"`
	BookingFeeEnabled bool   `json:"bookingFeeEnabled"`
}

func DefaultWidgetSettings() WidgetSettings {
	return WidgetSettings{
		PrimaryColor:      "#abdee6",
		ShowPrices:        true,
		MinRentalDays:     1,
		MaxRentalDays:     30,
		BookingFeeEnabled: true,
	}
}

func (s WidgetSettings) Validate(verr *ValidationError) {
	if s.PaymentEnabled && s.PaymentProvider == "" {
		verr.Add("paymentProvider", "required when payment is enabled")
	}
}

type OperatorSettings struct {
	OperatorURL         string `json:"operatorUrl" validate:"omitempty,url"`
	EmailNotifications  bool   `json:"emailNotifications"`
	NotificationEmail   string `json:"notificationEmail" validate:"omitempty,email"`
	ReturnReminderHours int    `json:"returnReminderHours" validate:"gte=0,lte=168"`
	AutoAssignVehicles  bool   `json:"autoAssignVehicles"`
}

func DefaultOperatorSettings() OperatorSettings {
	return OperatorSettings{
		EmailNotifications:  false,
		ReturnReminderHours: 24,
	}
}

func (s OperatorSettings) Validate(verr *ValidationError) {
	if s.EmailNotifications && s.NotificationEmail == "" {
		verr.Add("notificationEmail", "required when email notifications are enabled")
	}
}

type ExportFrequency string

const (
	ExportDaily    ExportFrequency = "DAILY"
	ExportWeekly   ExportFrequency = "WEEKLY"
	ExportMonthly  ExportFrequency = "MONTHLY"
	ExportDisabled ExportFrequency = "DISABLED"
)

type AccountingSettings struct {
	VATRate         decimal.Decimal `json:"vatRate"`
	Currency        string          `json:"currency" validate:"oneof=EUR USD GBP"`
	InvoicePrefix   string          `json:"invoicePrefix" validate:"max=16"`
	AccountingEmail string          `json:"accountingEmail" validate:"omitempty,email"`
	AutoExport      ExportFrequency `json:"autoExport" validate:"oneof=DAILY WEEKLY MONTHLY DISABLED"`
}

func DefaultAccountingSettings() AccountingSettings {
	return AccountingSettings{
		VATRate:       decimal.NewFromInt(21),
		Currency:      "EUR",
		InvoicePrefix: "VR-",
		AutoExport:    ExportDisabled,
	}
}

func (s AccountingSettings) Validate(verr *ValidationError) {
	if s.VATRate.IsNegative() || s.VATRate.GreaterThan(decimal.NewFromInt(100)) {
		verr.Add("vatRate", "must be between 0 and 100")
	}
	if s.AutoExport != ExportDisabled && s.AccountingEmail == "" {
		verr.Add("accountingEmail", "required when automatic export is enabled")
	}
}

type EntrepriseSettings struct {
	Name       string `json:"name"`
	LegalName  string `json:"legalName"`
	VATNumber  string `json:"vatNumber"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Website    string `json:"website" validate:"omitempty,url"`
	LogoURL    string `json:"logoUrl" validate:"omitempty,url"`
}

// LegalTexts is the document stored under /api/brand-settings/{BRAND}.
type LegalTexts struct {
	Brand           string        `json:"brand"`
	CGVResume       LocalizedText `json:"cgvResume"`
	CGVComplete     LocalizedText `json:"cgvComplete"`
	RGPD            LocalizedText `json:"rgpd"`
	MentionsLegales LocalizedText `json:"mentionsLegales"`
}

// BrandSettings is the per-brand settings aggregate.
type BrandSettings struct {
	Brand         string                `json:"brand"`
	Entreprise    EntrepriseSettings    `json:"entreprise"`
	Legal         LegalTexts            `json:"legal"`
	Widget        WidgetSettings        `json:"widget"`
	Operator      OperatorSettings      `json:"operator"`
	Accounting    AccountingSettings    `json:"accounting"`
	Notifications []NotificationSetting `json:"notifications"`
}
