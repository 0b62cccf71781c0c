package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"voltride-backoffice/internal/domain"
)

func widgetRepo(w domain.WidgetSettings) *MockSettingsRepo {
	repo := new(MockSettingsRepo)
	repo.On("GetWidget", mock.Anything, "VOLTRIDE").Return(&w, nil)
	return repo
}

func TestQuoteService_Quote(t *testing.T) {
	ctx := context.Background()
	catalog, _ := loadedCatalog(t, newFixture())

	t.Run("Success", func(t *testing.T) {
		settings := NewSettingsService("VOLTRIDE", widgetRepo(domain.DefaultWidgetSettings()), nil, nil)
		svc := NewQuoteService(catalog, settings)

		q, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 2, Options: map[string]int{"o1": 2}, Lang: domain.LangEN})
		require.NoError(t, err)
		assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(91)), q.Subtotal.String())
		assert.True(t, q.BookingFee.Equal(decimal.NewFromInt(10)))
		assert.True(t, q.BalanceDue.Equal(decimal.NewFromInt(81)))
		assert.True(t, q.SecurityDeposit.Equal(decimal.NewFromInt(300)))
		require.Len(t, q.Lines, 2)
		assert.Equal(t, "Casque", q.Lines[1].Label)
	})

	t.Run("FeeDisabled", func(t *testing.T) {
		w := domain.DefaultWidgetSettings()
		w.BookingFeeEnabled = false
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(w), nil, nil))

		q, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 1})
		require.NoError(t, err)
		assert.True(t, q.BookingFee.IsZero())
		assert.True(t, q.BalanceDue.Equal(q.Subtotal))
	})

	t.Run("OutsideRentalWindow", func(t *testing.T) {
		w := domain.DefaultWidgetSettings()
		w.MinRentalDays = 2
		w.MaxRentalDays = 3
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(w), nil, nil))

		_, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 1})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 4})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("VehicleOfOtherBrand", func(t *testing.T) {
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(domain.DefaultWidgetSettings()), nil, nil))

		_, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v2", Days: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("OptionOverMax", func(t *testing.T) {
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(domain.DefaultWidgetSettings()), nil, nil))

		_, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 1, Options: map[string]int{"o1": 3}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("SettingsUnavailable", func(t *testing.T) {
		repo := new(MockSettingsRepo)
		repo.On("GetWidget", mock.Anything, "VOLTRIDE").Return(nil, domain.ErrUpstream)
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", repo, nil, nil))

		_, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 1})
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("PeriodFromPickupAndReturn", func(t *testing.T) {
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(domain.DefaultWidgetSettings()), nil, nil))
		pickup := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
		ret := pickup.Add(54 * time.Hour)

		// 2 days and 6 hours is billed as 3 days.
		q, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", Days: 1, PickupAt: &pickup, ReturnAt: &ret, Options: map[string]int{"o1": 2}})
		require.NoError(t, err)
		assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(125)), q.Subtotal.String())
	})

	t.Run("ReturnWithoutPickup", func(t *testing.T) {
		svc := NewQuoteService(catalog, NewSettingsService("VOLTRIDE", widgetRepo(domain.DefaultWidgetSettings()), nil, nil))
		ret := time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)

		_, err := svc.Quote(ctx, QuoteRequest{VehicleID: "v1", ReturnAt: &ret})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "pickupAt", verr.Fields[0].Field)
	})
}
