package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		CommissionReports: "0 0 6 1 * *",
		AccountingExport:  "0 30 5 * * *",
		ReturnReminders:   "0 0 * * * *",
		Timezone:          "UTC",
	}}
	jr, err := jobs.NewJobRunner(&jobs.Services{}, cfg)
	require.NoError(t, err)

	s := NewScheduler(jr)
	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 3)
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		CommissionReports: "every month",
		AccountingExport:  "0 30 5 * * *",
		ReturnReminders:   "0 0 * * * *",
	}}
	jr, err := jobs.NewJobRunner(&jobs.Services{}, cfg)
	require.NoError(t, err)

	s := NewScheduler(jr)
	assert.Len(t, s.cron.Entries(), 2)
}
