package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"voltride-backoffice/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeBookingFee(t *testing.T) {
	tiered := domain.Category{BookingFeePercentLow: dec("30"), BookingFeePercentHigh: dec("20")}

	t.Run("Low tier", func(t *testing.T) {
		assert.True(t, dec("24").Equal(ComputeBookingFee(tiered, dec("80"))))
	})

	t.Run("High tier", func(t *testing.T) {
		assert.True(t, dec("30").Equal(ComputeBookingFee(tiered, dec("150"))))
	})

	t.Run("Boundary uses the high tier", func(t *testing.T) {
		assert.True(t, dec("20").Equal(ComputeBookingFee(tiered, dec("100"))))
		assert.True(t, dec("29.997").Equal(ComputeBookingFee(tiered, dec("99.99"))))
	})

	t.Run("Fixed fee wins for any subtotal", func(t *testing.T) {
		fixed := tiered
		fixed.BookingFee = dec("15")
		for _, s := range []string{"0", "10", "99.99", "100", "1000"} {
			assert.True(t, dec("15").Equal(ComputeBookingFee(fixed, dec(s))), s)
		}
	})

	t.Run("Unconfigured category yields zero", func(t *testing.T) {
		assert.True(t, ComputeBookingFee(domain.Category{}, dec("250")).IsZero())
		assert.False(t, domain.Category{}.FeeConfigured())
	})

	t.Run("Percent formula", func(t *testing.T) {
		for _, s := range []string{"0.01", "33.33", "99", "100.01", "512.40"} {
			subtotal := dec(s)
			percent := tiered.BookingFeePercentHigh
			if subtotal.LessThan(dec("100")) {
				percent = tiered.BookingFeePercentLow
			}
			want := subtotal.Mul(percent).Div(dec("100"))
			assert.True(t, want.Equal(ComputeBookingFee(tiered, subtotal)), s)
		}
	})
}
