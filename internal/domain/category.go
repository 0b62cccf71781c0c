package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID                    string          `json:"id"`
	Code                  string          `json:"code" validate:"required,max=32"`
	Name                  LocalizedText   `json:"name"`
	Brand                 string          `json:"brand" validate:"required"`
	BookingFee            decimal.Decimal `json:"bookingFee"`
	BookingFeePercentLow  decimal.Decimal `json:"bookingFeePercentLow"`
	BookingFeePercentHigh decimal.Decimal `json:"bookingFeePercentHigh"`
	VehicleCount          int             `json:"vehicleCount"` // read-only, computed by the repository
}

func (c Category) BrandOf() string { return c.Brand }

// FeeConfigured reports whether the booking fee policy can yield a non-zero
// amount: either a fixed fee or both percentage tiers.
func (c Category) FeeConfigured() bool {
	if !c.BookingFee.IsZero() {
		return true
	}
	return !c.BookingFeePercentLow.IsZero() && !c.BookingFeePercentHigh.IsZero()
}

func (c Category) Validate(verr *ValidationError) {
	c.Name.RequireFR("name", verr)
	if c.BookingFee.IsNegative() {
		verr.Add("bookingFee", "must be >= 0")
	}
	hundred := decimal.NewFromInt(100)
	for field, p := range map[string]decimal.Decimal{
		"bookingFeePercentLow":  c.BookingFeePercentLow,
		"bookingFeePercentHigh": c.BookingFeePercentHigh,
	} {
		if p.IsNegative() || p.GreaterThan(hundred) {
			verr.Add(field, "must be between 0 and 100")
		}
	}
}
