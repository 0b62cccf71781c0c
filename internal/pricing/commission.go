package pricing

import (
	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
)

// Commission is what a non-owned agency earns and where its report goes.
// Both fields are nil for the brand's own agencies.
type Commission struct {
	Rate        *decimal.Decimal `json:"rate"`
	ReportEmail *string          `json:"reportEmail"`
}

func (c Commission) Applies() bool {
	return c.Rate != nil
}

// ResolveCommission reads the commission terms of an agency. OWN agencies
// never earn commission, whatever is stored on them.
func ResolveCommission(agency domain.Agency) Commission {
	if agency.Kind() == domain.AgencyTypeOwn {
		return Commission{}
	}
	return Commission{Rate: agency.CommissionRate, ReportEmail: agency.CommissionEmail}
}

// PercentToFraction converts a staff-entered whole percent (15) to the stored
// fraction (0.15).
func PercentToFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// FractionToPercent is the reverse of PercentToFraction, for edit forms.
func FractionToPercent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}

// NormalizeAgency applies the commission write rule: an OWN agency keeps no
// commission rate or report address, and a blank report address is stored as
// nil.
func NormalizeAgency(agency domain.Agency) domain.Agency {
	if agency.Kind() == domain.AgencyTypeOwn {
		agency.AgencyType = domain.AgencyTypeOwn
		agency.CommissionRate = nil
		agency.CommissionEmail = nil
		return agency
	}
	if agency.CommissionEmail != nil && *agency.CommissionEmail == "" {
		agency.CommissionEmail = nil
	}
	return agency
}

// CommissionAmount is the commission owed on revenue, rounded to cents.
func CommissionAmount(agency domain.Agency, revenue decimal.Decimal) decimal.Decimal {
	c := ResolveCommission(agency)
	if !c.Applies() {
		return decimal.Zero
	}
	return revenue.Mul(*c.Rate).Round(2)
}
