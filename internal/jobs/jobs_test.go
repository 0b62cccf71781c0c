package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/service"
)

type staticRepo[T any] struct {
	records []T
	err     error
}

func (r staticRepo[T]) List(ctx context.Context) ([]T, error)       { return r.records, r.err }
func (r staticRepo[T]) Create(ctx context.Context, record *T) error { return nil }
func (r staticRepo[T]) Update(ctx context.Context, record *T) error { return nil }
func (r staticRepo[T]) Delete(ctx context.Context, id string) error { return nil }

// fakeSettings serves fixed accounting and operator settings.
type fakeSettings struct {
	service.SettingsService
	accounting domain.AccountingSettings
	operator   domain.OperatorSettings
	err        error
}

func (f *fakeSettings) Accounting(ctx context.Context) (domain.AccountingSettings, error) {
	return f.accounting, f.err
}

func (f *fakeSettings) Operator(ctx context.Context) (domain.OperatorSettings, error) {
	return f.operator, f.err
}

// outbox records sent emails.
type outbox struct {
	mu   sync.Mutex
	sent []service.Email
	err  error
}

func (o *outbox) Send(ctx context.Context, e service.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, e)
	return nil
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newRunner(t *testing.T, settings *fakeSettings, mail *outbox, now time.Time, bookingsErr error) *JobRunner {
	t.Helper()
	rate := decimal.RequireFromString("0.1")
	email := "partner@alcudia.test"
	catalog := service.NewCatalog("VOLTRIDE", service.CatalogRepositories{
		Agencies: staticRepo[domain.Agency]{records: []domain.Agency{
			{ID: "a1", Code: "PMI", Name: domain.LocalizedText{FR: "Palma"}, Brand: "VOLTRIDE"},
			{ID: "a2", Code: "ALC", Name: domain.LocalizedText{FR: "Alcudia"}, Brand: "VOLTRIDE",
				AgencyType: domain.AgencyTypePartner, CommissionRate: &rate, CommissionEmail: &email},
		}},
		Categories: staticRepo[domain.Category]{},
		Vehicles:   staticRepo[domain.Vehicle]{},
		Options:    staticRepo[domain.Option]{},
		Bookings: staticRepo[domain.Booking]{err: bookingsErr, records: []domain.Booking{
			{ID: "b1", Reference: "R-1", AgencyID: "a2", Status: domain.BookingStatusCompleted,
				EndDate: at("2026-09-15T10:00:00Z"), TotalPrice: decimal.NewFromInt(100)},
			{ID: "b2", Reference: "R-2", AgencyID: "a1", Status: domain.BookingStatusCompleted,
				EndDate: at("2026-10-17T10:00:00Z"), TotalPrice: decimal.NewFromInt(121)},
			{ID: "b3", Reference: "R-3", AgencyID: "a2", Status: domain.BookingStatusActive,
				Customer: domain.Customer{FirstName: "Ana", LastName: "Ruiz"},
				EndDate:  at("2026-10-18T15:00:00Z"), TotalPrice: decimal.NewFromInt(60)},
		}},
	})
	cfg := &config.Config{Scheduler: config.SchedulerConfig{Timezone: "UTC"}}
	jr, err := NewJobRunner(&Services{Catalog: catalog, Settings: settings, Email: mail}, cfg)
	require.NoError(t, err)
	jr.now = func() time.Time { return now }
	return jr
}

func TestSendCommissionReports(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mail := &outbox{}
		jr := newRunner(t, &fakeSettings{}, mail, at("2026-10-01T06:00:00Z"), nil)

		require.NoError(t, jr.Run(JobCommissionReports))
		require.Len(t, mail.sent, 1)
		e := mail.sent[0]
		assert.Equal(t, []string{"partner@alcudia.test"}, e.To)
		assert.Equal(t, "Commission report ALC 2026-09", e.Subject)
		assert.Contains(t, e.Text, "Commission: 10.00")
		require.Len(t, e.Attachments, 1)
		assert.Equal(t, "commission-alc-2026-09.csv", e.Attachments[0].Filename)
	})

	t.Run("BookingsUnavailable", func(t *testing.T) {
		mail := &outbox{}
		jr := newRunner(t, &fakeSettings{}, mail, at("2026-10-01T06:00:00Z"), domain.ErrUpstream)

		assert.ErrorIs(t, jr.Run(JobCommissionReports), domain.ErrUpstream)
		assert.Empty(t, mail.sent)
	})

	t.Run("SendFailure", func(t *testing.T) {
		mail := &outbox{err: errors.New("smtp down")}
		jr := newRunner(t, &fakeSettings{}, mail, at("2026-10-01T06:00:00Z"), nil)

		assert.Error(t, jr.Run(JobCommissionReports))
	})
}

func TestExportAccounting(t *testing.T) {
	t.Run("Daily", func(t *testing.T) {
		mail := &outbox{}
		settings := &fakeSettings{accounting: domain.AccountingSettings{
			VATRate: decimal.NewFromInt(21), Currency: "EUR", InvoicePrefix: "VR-",
			AccountingEmail: "compta@voltride.test", AutoExport: domain.ExportDaily,
		}}
		jr := newRunner(t, settings, mail, at("2026-10-18T05:30:00Z"), nil)

		require.NoError(t, jr.Run(JobAccountingExport))
		require.Len(t, mail.sent, 1)
		e := mail.sent[0]
		assert.Equal(t, []string{"compta@voltride.test"}, e.To)
		assert.Contains(t, e.Text, "Completed bookings: 1")
		assert.Contains(t, e.Text, "VAT included: 21.00 EUR")
		assert.Equal(t, "VOLTRIDE-2026-10-17-2026-10-17.csv", e.Attachments[0].Filename)
	})

	t.Run("Disabled", func(t *testing.T) {
		mail := &outbox{}
		settings := &fakeSettings{accounting: domain.DefaultAccountingSettings()}
		jr := newRunner(t, settings, mail, at("2026-10-18T05:30:00Z"), nil)

		require.NoError(t, jr.Run(JobAccountingExport))
		assert.Empty(t, mail.sent)
	})

	t.Run("SettingsUnavailable", func(t *testing.T) {
		jr := newRunner(t, &fakeSettings{err: domain.ErrUpstream}, &outbox{}, at("2026-10-18T05:30:00Z"), nil)
		assert.ErrorIs(t, jr.Run(JobAccountingExport), domain.ErrUpstream)
	})
}

func TestExportPeriod(t *testing.T) {
	sunday := at("2026-10-18T00:00:00Z")
	monday := at("2026-10-19T00:00:00Z")
	first := at("2026-11-01T00:00:00Z")

	start, end, due := exportPeriod(domain.ExportDaily, sunday)
	assert.True(t, due)
	assert.Equal(t, at("2026-10-17T00:00:00Z"), start)
	assert.Equal(t, sunday, end)

	_, _, due = exportPeriod(domain.ExportWeekly, sunday)
	assert.False(t, due)
	start, _, due = exportPeriod(domain.ExportWeekly, monday)
	assert.True(t, due)
	assert.Equal(t, at("2026-10-12T00:00:00Z"), start)

	_, _, due = exportPeriod(domain.ExportMonthly, monday)
	assert.False(t, due)
	start, _, due = exportPeriod(domain.ExportMonthly, first)
	assert.True(t, due)
	assert.Equal(t, at("2026-10-01T00:00:00Z"), start)

	_, _, due = exportPeriod(domain.ExportDisabled, first)
	assert.False(t, due)
}

func TestSendReturnReminders(t *testing.T) {
	enabled := domain.OperatorSettings{EmailNotifications: true, NotificationEmail: "ops@voltride.test", ReturnReminderHours: 24}

	t.Run("OncePerBooking", func(t *testing.T) {
		mail := &outbox{}
		jr := newRunner(t, &fakeSettings{operator: enabled}, mail, at("2026-10-18T12:00:00Z"), nil)

		require.NoError(t, jr.Run(JobReturnReminders))
		require.Len(t, mail.sent, 1)
		assert.Equal(t, []string{"ops@voltride.test"}, mail.sent[0].To)
		assert.Contains(t, mail.sent[0].Text, "R-3")
		assert.Contains(t, mail.sent[0].Text, "Ana Ruiz")
		assert.Contains(t, mail.sent[0].Text, "Alcudia")

		require.NoError(t, jr.Run(JobReturnReminders))
		assert.Len(t, mail.sent, 1)
	})

	t.Run("Disabled", func(t *testing.T) {
		mail := &outbox{}
		jr := newRunner(t, &fakeSettings{operator: domain.DefaultOperatorSettings()}, mail, at("2026-10-18T12:00:00Z"), nil)

		require.NoError(t, jr.Run(JobReturnReminders))
		assert.Empty(t, mail.sent)
	})

	t.Run("OutsideWindow", func(t *testing.T) {
		mail := &outbox{}
		short := enabled
		short.ReturnReminderHours = 2
		jr := newRunner(t, &fakeSettings{operator: short}, mail, at("2026-10-18T12:00:00Z"), nil)

		require.NoError(t, jr.Run(JobReturnReminders))
		assert.Empty(t, mail.sent)
	})
}

func TestRunUnknownJob(t *testing.T) {
	jr := newRunner(t, &fakeSettings{}, &outbox{}, time.Now(), nil)
	assert.Error(t, jr.Run("payroll"))
}

func TestRunWithRecovery(t *testing.T) {
	jr := newRunner(t, &fakeSettings{}, &outbox{}, time.Now(), nil)
	err := jr.runWithRecovery("boom", func(context.Context) error { panic("kaboom") })
	assert.ErrorContains(t, err, "kaboom")
}

func TestNewJobRunner_BadTimezone(t *testing.T) {
	_, err := NewJobRunner(&Services{}, &config.Config{Scheduler: config.SchedulerConfig{Timezone: "Mars/Olympus"}})
	assert.Error(t, err)
}
