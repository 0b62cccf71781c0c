package scheduler

import (
	"github.com/robfig/cron/v3"

	"voltride-backoffice/internal/jobs"
	"voltride-backoffice/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Seconds precision, in the brand's timezone
	c := cron.New(
		cron.WithLocation(jobRunner.Location()),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Monthly commission reports
	_, err := s.cron.AddFunc(cfg.CommissionReports, s.jobs.SendCommissionReports)
	if err != nil {
		logger.Error("Failed to register SendCommissionReports job", "error", err)
	}

	// Daily tick; the accounting settings decide whether an export is due
	_, err = s.cron.AddFunc(cfg.AccountingExport, s.jobs.ExportAccounting)
	if err != nil {
		logger.Error("Failed to register ExportAccounting job", "error", err)
	}

	// Hourly return reminders
	_, err = s.cron.AddFunc(cfg.ReturnReminders, s.jobs.SendReturnReminders)
	if err != nil {
		logger.Error("Failed to register SendReturnReminders job", "error", err)
	}

	logger.Info("Cron jobs registered", "entries", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
