package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	httpapi "voltride-backoffice/internal/api/http"
	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
	"voltride-backoffice/internal/repository/postgres"
	"voltride-backoffice/internal/repository/restapi"
	"voltride-backoffice/internal/service"
	"voltride-backoffice/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Voltride back-office...", "brand", cfg.API.Brand, "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Record repository", "base_url", cfg.API.BaseURL, "timeout", cfg.API.Timeout(), "retry_attempts", cfg.API.RetryAttempts)

	ctx := context.Background()

	// Record repository
	client := restapi.NewClient(restapi.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout(),
		RetryAttempts: cfg.API.RetryAttempts,
		RetryBase:     cfg.API.RetryBase(),
	})
	store := restapi.NewStore(client)

	// Action journal (optional)
	var journal repository.JournalRepository
	if cfg.JournalEnabled() {
		logger.Info("Connecting to journal database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to journal database", "error", err)
			log.Fatalf("Failed to connect to journal database: %v", err)
		}
		defer db.Close()

		pg := postgres.NewStore(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate journal database: %v", err)
		}
		journal = pg.JournalRepository
		logger.Info("Journal database connection established")
	} else {
		logger.Info("Action journal disabled (no database host configured)")
	}

	// Image storage
	imageStore, err := storage.New(storage.Config{
		Type:         cfg.Storage.Type,
		UploadURL:    cfg.Storage.UploadURL,
		UploadPreset: cfg.Storage.UploadPreset,
		MockDir:      cfg.Storage.UploadDir,
		BaseURL:      cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err, "type", cfg.Storage.Type)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	mockStorage, _ := imageStore.(*storage.MockStorageService)
	if mockStorage != nil {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
	}

	// Initialize Services
	brand := cfg.API.Brand
	catalog := service.NewCatalog(brand, service.CatalogRepositories{
		Agencies:   store.AgencyRepository,
		Categories: store.CategoryRepository,
		Vehicles:   store.VehicleRepository,
		Options:    store.OptionRepository,
		Bookings:   store.BookingRepository,
	})
	settingsSvc := service.NewSettingsService(brand, store.SettingsRepository, store.NotificationSettingsRepository, journal)

	services := httpapi.Services{
		Catalog:     catalog,
		Agencies:    service.NewAgencyService(store.AgencyRepository, catalog, journal),
		Categories:  service.NewCategoryService(store.CategoryRepository, catalog, journal),
		Vehicles:    service.NewVehicleService(store.VehicleRepository, catalog, journal),
		Options:     service.NewOptionService(store.OptionRepository, catalog, journal),
		Bookings:    service.NewBookingService(catalog),
		Quotes:      service.NewQuoteService(catalog, settingsSvc),
		Settings:    settingsSvc,
		Images:      service.NewImageService(imageStore, cfg.Storage.MaxFileSize<<20, cfg.Storage.AllowedTypes),
		Journal:     service.NewJournalService(journal, brand),
		MockStorage: mockStorage,
	}

	// Warm the catalog; a partial load is served and retried on the next reload.
	loadCtx, cancel := context.WithTimeout(ctx, 2*cfg.API.Timeout())
	snap, err := catalog.Reload(loadCtx)
	cancel()
	if err != nil {
		logger.Warn("Initial catalog load incomplete", "error", err)
	} else {
		logger.Info("Catalog loaded", "agencies", len(snap.Agencies), "categories", len(snap.Categories), "vehicles", len(snap.Vehicles), "options", len(snap.Options), "bookings", len(snap.Bookings))
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve HTTP", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
