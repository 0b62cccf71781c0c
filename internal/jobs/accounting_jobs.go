package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/service"
)

var hundred = decimal.NewFromInt(100)

// ExportAccounting sends the completed bookings CSV when the brand's export
// frequency says one is due today
func (jr *JobRunner) ExportAccounting() {
	_ = jr.runWithRecovery(JobAccountingExport, jr.exportAccounting)
}

func (jr *JobRunner) exportAccounting(ctx context.Context) error {
	settings, err := jr.services.Settings.Accounting(ctx)
	if err != nil {
		return fmt.Errorf("load accounting settings: %w", err)
	}

	start, end, due := exportPeriod(settings.AutoExport, jr.startOfDay(jr.now()))
	if !due {
		logger.DebugContext(ctx, "No accounting export due", "frequency", settings.AutoExport)
		return nil
	}
	if settings.AccountingEmail == "" {
		logger.WarnContext(ctx, "Accounting export due but no accounting email configured")
		return nil
	}

	snap, err := jr.reload(ctx, service.ResourceAgencies, service.ResourceBookings)
	if err != nil {
		return err
	}
	export, err := service.BuildAccountingExport(snap, settings, start, end)
	if err != nil {
		return err
	}

	email := service.Email{
		To:      []string{settings.AccountingEmail},
		Subject: fmt.Sprintf("Accounting export %s %s to %s", snap.Brand, start.Format(time.DateOnly), end.AddDate(0, 0, -1).Format(time.DateOnly)),
		Text: fmt.Sprintf("Completed bookings: %d\nTotal: %s %s\nVAT included: %s %s\n",
			export.Rows, export.Total.StringFixed(2), settings.Currency, export.VAT.StringFixed(2), settings.Currency),
		Attachments: []service.Attachment{{Filename: export.Filename, ContentType: "text/csv", Data: export.Data}},
	}
	if err := jr.services.Email.Send(ctx, email); err != nil {
		return fmt.Errorf("send accounting export: %w", err)
	}

	logger.InfoContext(ctx, "Accounting export sent", "rows", export.Rows, "file", export.Filename)
	return nil
}

// exportPeriod returns the [start, end) window to export on day today, and
// whether an export is due at all. Daily exports cover yesterday, weekly ones
// run on Mondays for the previous week, monthly ones on the 1st for the
// previous month.
func exportPeriod(freq domain.ExportFrequency, today time.Time) (time.Time, time.Time, bool) {
	switch freq {
	case domain.ExportDaily:
		return today.AddDate(0, 0, -1), today, true
	case domain.ExportWeekly:
		if today.Weekday() != time.Monday {
			return time.Time{}, time.Time{}, false
		}
		return today.AddDate(0, 0, -7), today, true
	case domain.ExportMonthly:
		if today.Day() != 1 {
			return time.Time{}, time.Time{}, false
		}
		return today.AddDate(0, -1, 0), today, true
	}
	return time.Time{}, time.Time{}, false
}
