package http

import (
	"net/http"
	"strconv"
	"time"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/repository"
	"voltride-backoffice/internal/service"
)

type journalHandler struct {
	journal service.JournalService
}

// List reads ?entity=&since=<RFC3339>&limit=.
func (h *journalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.JournalFilter{Entity: q.Get("entity")}

	verr := &domain.ValidationError{}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			verr.Add("since", "must be an RFC 3339 timestamp")
		}
		filter.Since = t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			verr.Add("limit", "must be between 1 and 1000")
		}
		filter.Limit = n
	}
	if err := verr.OrNil(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	entries, err := h.journal.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
