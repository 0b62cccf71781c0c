package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/service"
)

type settingsHandler struct {
	settings service.SettingsService
}

func (h *settingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.settings.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Save replaces one settings section: widget, operator, compta, entreprise
// or legal.
func (h *settingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	section := mux.Vars(r)["section"]

	var (
		doc  any
		save func() error
	)
	switch domain.SettingsSection(section) {
	case domain.SectionWidget:
		v := &domain.WidgetSettings{}
		doc, save = v, func() error { return h.settings.SaveWidget(ctx, v) }
	case domain.SectionOperator:
		v := &domain.OperatorSettings{}
		doc, save = v, func() error { return h.settings.SaveOperator(ctx, v) }
	case domain.SectionCompta:
		v := &domain.AccountingSettings{}
		doc, save = v, func() error { return h.settings.SaveAccounting(ctx, v) }
	case domain.SectionEntreprise:
		v := &domain.EntrepriseSettings{}
		doc, save = v, func() error { return h.settings.SaveEntreprise(ctx, v) }
	case "legal":
		v := &domain.LegalTexts{}
		doc, save = v, func() error { return h.settings.SaveLegalTexts(ctx, v) }
	default:
		writeError(w, http.StatusNotFound, "unknown settings section "+section)
		return
	}

	if err := decodeJSON(r, doc); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if err := save(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type notificationsResponse struct {
	Saved []domain.NotificationSetting `json:"saved"`
	Error string                       `json:"error,omitempty"`
}

// SaveNotifications stores the role matrix. When only some rows fail the
// response is 502 and lists the rows that did save.
func (h *settingsHandler) SaveNotifications(w http.ResponseWriter, r *http.Request) {
	var rows []domain.NotificationSetting
	if err := decodeJSON(r, &rows); err != nil {
		writeServiceError(w, r, err)
		return
	}
	saved, err := h.settings.SaveNotifications(r.Context(), rows)
	if err != nil && len(saved) == 0 {
		writeServiceError(w, r, err)
		return
	}
	if saved == nil {
		saved = []domain.NotificationSetting{}
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, notificationsResponse{Saved: saved, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, notificationsResponse{Saved: saved})
}
