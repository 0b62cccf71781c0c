package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/service"
	"voltride-backoffice/internal/storage"
)

// Services are the back-office operations exposed over HTTP.
type Services struct {
	Catalog    *service.Catalog
	Agencies   service.AgencyService
	Categories service.CategoryService
	Vehicles   service.VehicleService
	Options    service.OptionService
	Bookings   service.BookingService
	Quotes     service.QuoteService
	Settings   service.SettingsService
	Images     service.ImageService
	Journal    service.JournalService

	// MockStorage is set when images are kept on local disk.
	MockStorage *storage.MockStorageService
}

// NewRouter builds the admin API under /api/v1.
func NewRouter(s Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(recoveryMiddleware, requestIDMiddleware, loggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	catalog := &catalogHandler{catalog: s.Catalog}
	api.HandleFunc("/catalog", catalog.Snapshot).Methods(http.MethodGet)
	api.HandleFunc("/catalog/reload", catalog.Reload).Methods(http.MethodPost)

	registerRecords(api, "/agencies", &recordHandler[domain.Agency]{
		records: s.Agencies,
		decode:  decodeAgency,
		setID:   func(a *domain.Agency, id string) { a.ID = id },
		texts:   agencyTexts,
		present: presentAgency,
	})
	registerRecords(api, "/categories", &recordHandler[domain.Category]{
		records: s.Categories,
		decode:  decodeRecord[domain.Category],
		setID:   func(c *domain.Category, id string) { c.ID = id },
		texts:   categoryTexts,
	})
	registerRecords(api, "/vehicles", &recordHandler[domain.Vehicle]{
		records: s.Vehicles,
		decode:  decodeRecord[domain.Vehicle],
		setID:   func(v *domain.Vehicle, id string) { v.ID = id },
		texts:   vehicleTexts,
	})
	registerRecords(api, "/options", &recordHandler[domain.Option]{
		records: s.Options,
		decode:  decodeRecord[domain.Option],
		setID:   func(o *domain.Option, id string) { o.ID = id },
		texts:   optionTexts,
	})

	bookings := &bookingHandler{bookings: s.Bookings}
	api.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)

	quotes := &quoteHandler{quotes: s.Quotes}
	api.HandleFunc("/quotes", quotes.Create).Methods(http.MethodPost)

	settings := &settingsHandler{settings: s.Settings}
	api.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings/notifications", settings.SaveNotifications).Methods(http.MethodPut)
	api.HandleFunc("/settings/{section}", settings.Save).Methods(http.MethodPut)

	journal := &journalHandler{journal: s.Journal}
	api.HandleFunc("/journal", journal.List).Methods(http.MethodGet)

	images := NewImageUploadHandler(s.Images, s.MockStorage)
	api.HandleFunc("/images", images.HandleUpload).Methods(http.MethodPost)
	if s.MockStorage != nil {
		RegisterMockStorageRoutes(api, s.MockStorage)
	}

	return router
}
