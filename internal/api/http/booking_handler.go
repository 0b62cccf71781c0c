package http

import (
	"net/http"
	"time"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/service"
)

type bookingHandler struct {
	bookings service.BookingService
}

// List filters with ?status=&agencyId=&from=&to= (dates as YYYY-MM-DD, to
// exclusive).
func (h *bookingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.BookingFilter{
		Status:   domain.BookingStatus(q.Get("status")),
		AgencyID: q.Get("agencyId"),
	}
	verr := &domain.ValidationError{}
	filter.From = parseDate(q.Get("from"), "from", verr)
	filter.To = parseDate(q.Get("to"), "to", verr)
	if err := verr.OrNil(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	bookings, err := h.bookings.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func parseDate(v, field string, verr *domain.ValidationError) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		verr.Add(field, "must be a date (YYYY-MM-DD)")
	}
	return t
}
