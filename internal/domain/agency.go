package domain

import "github.com/shopspring/decimal"

type AgencyType string

const (
	AgencyTypeOwn       AgencyType = "OWN"
	AgencyTypePartner   AgencyType = "PARTNER"
	AgencyTypeFranchise AgencyType = "FRANCHISE"
)

func (t AgencyType) Valid() bool {
	switch t {
	case AgencyTypeOwn, AgencyTypePartner, AgencyTypeFranchise:
		return true
	}
	return false
}

type Agency struct {
	ID                string        `json:"id"`
	Code              string        `json:"code" validate:"required,max=32"`
	Name              LocalizedText `json:"name"`
	Address           string        `json:"address"`
	City              string        `json:"city"`
	PostalCode        string        `json:"postalCode"`
	Country           string        `json:"country"`
	Phone             string        `json:"phone"`
	Email             string        `json:"email" validate:"omitempty,email"`
	Brand             string        `json:"brand" validate:"required"`
	IsActive          bool          `json:"isActive"`
	AgencyType        AgencyType    `json:"agencyType"`
	ShowStockUrgency  bool          `json:"showStockUrgency"`
	OpeningTime       string        `json:"openingTime,omitempty"`
	ClosingTimeSummer string        `json:"closingTimeSummer,omitempty"`
	ClosingTimeWinter string        `json:"closingTimeWinter,omitempty"`

	// Fraction of revenue (0.15 for 15%). Nil for OWN agencies.
	CommissionRate  *decimal.Decimal `json:"commissionRate"`
	CommissionEmail *string          `json:"commissionEmail"`
}

func (a Agency) BrandOf() string { return a.Brand }

// Kind defaults an unset type to OWN.
func (a Agency) Kind() AgencyType {
	if a.AgencyType == "" {
		return AgencyTypeOwn
	}
	return a.AgencyType
}

func (a Agency) Validate(verr *ValidationError) {
	a.Name.RequireFR("name", verr)
	if !a.Kind().Valid() {
		verr.Add("agencyType", "must be one of OWN, PARTNER, FRANCHISE")
	}
	if a.CommissionRate != nil {
		if a.CommissionRate.IsNegative() || a.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
			verr.Add("commissionRate", "must be between 0 and 100 percent")
		}
	}
}
