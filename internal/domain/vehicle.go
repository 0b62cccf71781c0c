package domain

import "github.com/shopspring/decimal"

type LicenseType string

const (
	LicenseNone LicenseType = "NONE"
	LicenseAM   LicenseType = "AM"
	LicenseA1   LicenseType = "A1"
	LicenseA2   LicenseType = "A2"
	LicenseA    LicenseType = "A"
	LicenseB    LicenseType = "B"
)

type Vehicle struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku" validate:"required,max=64"`
	Name             LocalizedText   `json:"name"`
	Description      LocalizedText   `json:"description"`
	Deposit          decimal.Decimal `json:"deposit"`
	HasPlate         bool            `json:"hasPlate"`
	LicenseType      LicenseType     `json:"licenseType,omitempty" validate:"omitempty,oneof=NONE AM A1 A2 A B"`
	KmIncludedPerDay int             `json:"kmIncludedPerDay" validate:"gte=0"`
	ExtraKmPrice     decimal.Decimal `json:"extraKmPrice"`
	HelmetIncluded   bool            `json:"helmetIncluded"`
	ImageURL         string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID       string          `json:"categoryId" validate:"required"`
	Pricing          PricingSchedule `json:"pricing"`

	// Derived at load time from the category join; never sent to the repository.
	Brand    string    `json:"brand,omitempty"`
	Category *Category `json:"category,omitempty" validate:"-"`
}

func (v Vehicle) BrandOf() string { return v.Brand }

func (v Vehicle) Validate(verr *ValidationError) {
	v.Name.RequireFR("name", verr)
	if v.Deposit.IsNegative() {
		verr.Add("deposit", "must be >= 0")
	}
	if v.ExtraKmPrice.IsNegative() {
		verr.Add("extraKmPrice", "must be >= 0")
	}
	v.Pricing.Validate("pricing", verr)
}
