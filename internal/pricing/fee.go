package pricing

import (
	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
)

// FeeTierThreshold splits the low and high percentage tiers. A subtotal equal
// to the threshold is charged at the high tier.
var FeeTierThreshold = decimal.NewFromInt(100)

var hundred = decimal.NewFromInt(100)

// ComputeBookingFee returns the upfront amount due for a reservation of the
// given subtotal. A non-zero fixed fee on the category wins; otherwise the
// subtotal is charged at bookingFeePercentLow below 100 and at
// bookingFeePercentHigh from 100 upwards. An unconfigured category yields 0.
func ComputeBookingFee(category domain.Category, subtotal decimal.Decimal) decimal.Decimal {
	if !category.BookingFee.IsZero() {
		return category.BookingFee
	}
	percent := category.BookingFeePercentHigh
	if subtotal.LessThan(FeeTierThreshold) {
		percent = category.BookingFeePercentLow
	}
	return subtotal.Mul(percent).Div(hundred)
}
