package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltride-backoffice/internal/domain"
)

func quoteFixture() QuoteInput {
	category := domain.Category{ID: "cat-1", BookingFeePercentLow: dec("30"), BookingFeePercentHigh: dec("20")}
	vehicle := domain.Vehicle{ID: "v1", CategoryID: "cat-1", Name: domain.LocalizedText{FR: "Vélo urbain"}, Deposit: dec("250"), Pricing: sampleSchedule()}

	var helmetPricing, basketPricing domain.PricingSchedule
	helmetPricing.SetDay(2, dec("0"))
	helmetPricing.SetDay(7, dec("0"))
	basketPricing.SetDay(2, dec("5"))
	basketPricing.SetDay(7, dec("12"))

	return QuoteInput{
		Vehicle:  vehicle,
		Category: category,
		Options: []domain.Option{
			{ID: "helmet", Name: domain.LocalizedText{FR: "Casque"}, IncludedByDefault: true, MaxQuantity: 2, Pricing: helmetPricing},
			{ID: "basket", Name: domain.LocalizedText{FR: "Panier"}, MaxQuantity: 1, Pricing: basketPricing},
			{ID: "child-seat", Name: domain.LocalizedText{FR: "Siège enfant"}, MaxQuantity: 1, AssociatedCategoryIDs: []string{"cat-9"}},
		},
		Days: 2,
	}
}

func TestBuildQuote(t *testing.T) {
	t.Run("Low tier with default option", func(t *testing.T) {
		in := quoteFixture()
		in.Selections = map[string]int{"basket": 1}

		q, err := BuildQuote(in)
		require.NoError(t, err)

		assert.Len(t, q.Lines, 3)
		assert.True(t, dec("40").Equal(q.Subtotal), q.Subtotal.String())
		assert.True(t, dec("12").Equal(q.BookingFee))
		assert.True(t, dec("28").Equal(q.BalanceDue))
		assert.True(t, dec("250").Equal(q.SecurityDeposit))
		assert.Equal(t, "Vélo urbain", q.Lines[0].Label)
	})

	t.Run("High tier with extra hours", func(t *testing.T) {
		in := quoteFixture()
		in.Days = 7
		in.ExtraHours = 4
		in.Selections = map[string]int{"helmet": 0}

		q, err := BuildQuote(in)
		require.NoError(t, err)

		assert.Len(t, q.Lines, 2)
		assert.Equal(t, "extra_hours", q.Lines[1].Kind)
		assert.True(t, dec("110").Equal(q.Subtotal))
		assert.True(t, dec("22").Equal(q.BookingFee))
	})

	t.Run("Quantity above maximum", func(t *testing.T) {
		in := quoteFixture()
		in.Selections = map[string]int{"basket": 2}

		_, err := BuildQuote(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Option restricted to another category", func(t *testing.T) {
		in := quoteFixture()
		in.Selections = map[string]int{"child-seat": 1}

		_, err := BuildQuote(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown option", func(t *testing.T) {
		in := quoteFixture()
		in.Selections = map[string]int{"jetpack": 1}

		_, err := BuildQuote(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		in := quoteFixture()
		in.Days = 0

		_, err := BuildQuote(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Vehicle outside category", func(t *testing.T) {
		in := quoteFixture()
		in.Category.ID = "cat-2"

		_, err := BuildQuote(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
