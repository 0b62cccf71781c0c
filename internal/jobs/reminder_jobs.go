package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/service"
)

// SendReturnReminders emails the operator the active bookings due back
// within the configured reminder window
func (jr *JobRunner) SendReturnReminders() {
	_ = jr.runWithRecovery(JobReturnReminders, jr.sendReturnReminders)
}

func (jr *JobRunner) sendReturnReminders(ctx context.Context) error {
	operator, err := jr.services.Settings.Operator(ctx)
	if err != nil {
		return fmt.Errorf("load operator settings: %w", err)
	}
	if !operator.EmailNotifications || operator.NotificationEmail == "" || operator.ReturnReminderHours <= 0 {
		logger.DebugContext(ctx, "Return reminders disabled")
		return nil
	}

	snap, err := jr.reload(ctx, service.ResourceAgencies, service.ResourceBookings)
	if err != nil {
		return err
	}
	now := jr.now().In(jr.location)
	due := jr.unreminded(service.DueReturns(snap, now, time.Duration(operator.ReturnReminderHours)*time.Hour))
	if len(due) == 0 {
		logger.DebugContext(ctx, "No returns due")
		return nil
	}

	agencies := make(map[string]string, len(snap.Agencies))
	for _, a := range snap.Agencies {
		agencies[a.ID] = a.Name.Resolve("")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Bookings due back within %d hours:\n\n", operator.ReturnReminderHours)
	for _, bk := range due {
		fmt.Fprintf(&b, "- %s  %s  %s  return %s\n",
			bk.Reference, bk.Customer.FullName(), agencies[bk.AgencyID], bk.EndDate.In(jr.location).Format("2006-01-02 15:04"))
	}

	email := service.Email{
		To:      []string{operator.NotificationEmail},
		Subject: fmt.Sprintf("%d vehicle return(s) due", len(due)),
		Text:    b.String(),
	}
	if err := jr.services.Email.Send(ctx, email); err != nil {
		return fmt.Errorf("send return reminders: %w", err)
	}
	jr.markReminded(due)

	logger.InfoContext(ctx, "Return reminders sent", "bookings", len(due))
	return nil
}

// unreminded drops bookings already reminded for their current end date. A
// booking whose end date moves is reminded again.
func (jr *JobRunner) unreminded(bookings []domain.Booking) []domain.Booking {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if end, ok := jr.reminded[b.ID]; ok && end.Equal(b.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (jr *JobRunner) markReminded(bookings []domain.Booking) {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	cutoff := jr.now().Add(-24 * time.Hour)
	for id, end := range jr.reminded {
		if end.Before(cutoff) {
			delete(jr.reminded, id)
		}
	}
	for _, b := range bookings {
		jr.reminded[b.ID] = b.EndDate
	}
}
