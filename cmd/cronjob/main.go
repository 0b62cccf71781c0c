package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/jobs"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository/restapi"
	"voltride-backoffice/internal/scheduler"
	"voltride-backoffice/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'commission-reports', 'accounting-export', 'return-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Voltride cronjob runner...", "brand", cfg.API.Brand, "log_level", cfg.Log.Level)

	// Record repository
	client := restapi.NewClient(restapi.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout(),
		RetryAttempts: cfg.API.RetryAttempts,
		RetryBase:     cfg.API.RetryBase(),
	})
	store := restapi.NewStore(client)

	// Initialize Services. Jobs only read, so no journal is wired.
	emailService, err := service.NewEmailService(cfg)
	if err != nil {
		logger.Error("Failed to initialize email service", "error", err, "provider", cfg.Mail.Provider)
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	catalog := service.NewCatalog(cfg.API.Brand, service.CatalogRepositories{
		Agencies:   store.AgencyRepository,
		Categories: store.CategoryRepository,
		Vehicles:   store.VehicleRepository,
		Options:    store.OptionRepository,
		Bookings:   store.BookingRepository,
	})
	settingsService := service.NewSettingsService(cfg.API.Brand, store.SettingsRepository, store.NotificationSettingsRepository, nil)

	jobServices := &jobs.Services{
		Catalog:  catalog,
		Settings: settingsService,
		Email:    emailService,
	}

	// Initialize Job Runner
	jobRunner, err := jobs.NewJobRunner(jobServices, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize job runner: %v", err)
	}

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "timezone", jobRunner.Location().String())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits non-zero when it fails
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	if jobName == "all" {
		jobRunner.RunAll()
		return
	}

	for _, name := range jobs.Names {
		if name != jobName {
			continue
		}
		if err := jobRunner.Run(name); err != nil {
			logger.Error("Job failed", "job", name, "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Error("Unknown job name", "job", jobName)
	fmt.Printf("Available jobs:\n")
	for _, name := range jobs.Names {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Printf("  - all\n")
	os.Exit(1)
}
