package http

import (
	"net/http"

	"voltride-backoffice/internal/service"
)

type quoteHandler struct {
	quotes service.QuoteService
}

func (h *quoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	q, err := h.quotes.Quote(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
