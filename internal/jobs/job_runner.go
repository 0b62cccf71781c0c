package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/service"
)

// jobTimeout bounds one job run.
const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	location *time.Location
	now      func() time.Time

	mu       sync.Mutex
	reminded map[string]time.Time // booking id -> end date already reminded
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Catalog  *service.Catalog
	Settings service.SettingsService
	Email    service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies. Job periods
// are computed in the scheduler timezone.
func NewJobRunner(services *Services, cfg *config.Config) (*JobRunner, error) {
	loc := time.UTC
	if tz := cfg.Scheduler.Timezone; tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduler timezone %q: %w", tz, err)
		}
		loc = l
	}
	return &JobRunner{
		services: services,
		config:   cfg,
		location: loc,
		now:      time.Now,
		reminded: make(map[string]time.Time),
	}, nil
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Location returns the timezone jobs run in
func (jr *JobRunner) Location() *time.Location {
	return jr.location
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	ctx = logger.WithRequestID(ctx, jobName+"-"+uuid.NewString())

	logger.InfoContext(ctx, "Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(ctx); err != nil {
		logger.ErrorContext(ctx, "Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return err
	}
	logger.InfoContext(ctx, "Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// reload refreshes the catalog and fails when one of resources is missing.
func (jr *JobRunner) reload(ctx context.Context, resources ...string) (*service.Snapshot, error) {
	snap, err := jr.services.Catalog.Reload(ctx)
	if err != nil {
		for _, r := range resources {
			if ferr := snap.Failed(r); ferr != nil {
				return nil, fmt.Errorf("reload %s: %w", r, ferr)
			}
		}
		logger.WarnContext(ctx, "Catalog partially reloaded", "error", err)
	}
	return snap, nil
}

// startOfDay truncates t to midnight in the runner's timezone.
func (jr *JobRunner) startOfDay(t time.Time) time.Time {
	t = t.In(jr.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, jr.location)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendCommissionReports()
	jr.ExportAccounting()
	jr.SendReturnReminders()
}

// Run executes one job by name and returns its error.
func (jr *JobRunner) Run(name string) error {
	switch name {
	case JobCommissionReports:
		return jr.runWithRecovery(name, jr.sendCommissionReports)
	case JobAccountingExport:
		return jr.runWithRecovery(name, jr.exportAccounting)
	case JobReturnReminders:
		return jr.runWithRecovery(name, jr.sendReturnReminders)
	}
	return fmt.Errorf("unknown job: %s", name)
}

const (
	JobCommissionReports = "commission-reports"
	JobAccountingExport  = "accounting-export"
	JobReturnReminders   = "return-reminders"
)

// Names lists the jobs in the order RunAll runs them.
var Names = []string{JobCommissionReports, JobAccountingExport, JobReturnReminders}
