package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/service"
)

// SendCommissionReports emails each partner and franchise agency its
// commission for the previous calendar month
func (jr *JobRunner) SendCommissionReports() {
	_ = jr.runWithRecovery(JobCommissionReports, jr.sendCommissionReports)
}

func (jr *JobRunner) sendCommissionReports(ctx context.Context) error {
	snap, err := jr.reload(ctx, service.ResourceAgencies, service.ResourceBookings)
	if err != nil {
		return err
	}

	today := jr.startOfDay(jr.now())
	end := today.AddDate(0, 0, 1-today.Day())
	start := end.AddDate(0, -1, 0)
	period := start.Format("2006-01")

	reports := service.CommissionReports(snap, start, end)
	var errs []error
	sent := 0
	for _, r := range reports {
		data, err := r.CSV()
		if err != nil {
			errs = append(errs, fmt.Errorf("agency %s: %w", r.Agency.Code, err))
			continue
		}
		email := service.Email{
			To:      []string{r.Recipient},
			Subject: fmt.Sprintf("Commission report %s %s", r.Agency.Code, period),
			Text: fmt.Sprintf(
				"Agency: %s\nPeriod: %s\nCompleted bookings: %d\nRevenue: %s\nRate: %s%%\nCommission: %s\n",
				r.Agency.Name.Resolve(""), period, len(r.Bookings),
				r.Revenue.StringFixed(2), r.Rate.Mul(hundred).String(), r.Commission.StringFixed(2),
			),
			Attachments: []service.Attachment{{
				Filename:    fmt.Sprintf("commission-%s-%s.csv", strings.ToLower(r.Agency.Code), period),
				ContentType: "text/csv",
				Data:        data,
			}},
		}
		if err := jr.services.Email.Send(ctx, email); err != nil {
			errs = append(errs, fmt.Errorf("agency %s: %w", r.Agency.Code, err))
			continue
		}
		sent++
	}

	logger.InfoContext(ctx, "Commission reports sent", "period", period, "reports", len(reports), "sent", sent)
	return errors.Join(errs...)
}
