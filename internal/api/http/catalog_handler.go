package http

import (
	"net/http"

	"voltride-backoffice/internal/service"
)

type catalogHandler struct {
	catalog *service.Catalog
}

// Snapshot returns the last loaded view of the brand.
func (h *catalogHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Snapshot())
}

// Reload re-reads every collection. Partial failures are reported in the
// snapshot's errors; the request only fails when nothing could be read.
func (h *catalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.catalog.Reload(r.Context())
	if err != nil && len(snap.Errors) == 5 {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
