package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/pricing"
	"voltride-backoffice/internal/service"
)

// recordService is the shape shared by the agency, category, vehicle and
// option services.
type recordService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record *T) (*service.Result, error)
	Update(ctx context.Context, record *T) (*service.Result, error)
	Delete(ctx context.Context, id string) (*service.Result, error)
}

type recordHandler[T any] struct {
	records recordService[T]
	decode  func(data []byte) (*T, error)
	setID   func(record *T, id string)
	present func(record T) any // optional response shape
	// texts names the record's localized fields by form prefix ("name" for
	// nameFr, nameEs, nameEn).
	texts func(record *T) map[string]*domain.LocalizedText
}

type mutationResponse struct {
	Record   any               `json:"record,omitempty"`
	Snapshot *service.Snapshot `json:"snapshot"`
	Warnings []string          `json:"warnings,omitempty"`
}

func registerRecords[T any](api *mux.Router, path string, h *recordHandler[T]) {
	api.HandleFunc(path, h.List).Methods(http.MethodGet)
	api.HandleFunc(path, h.Create).Methods(http.MethodPost)
	api.HandleFunc(path+"/{id}", h.Update).Methods(http.MethodPut)
	api.HandleFunc(path+"/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *recordHandler[T]) view(record T) any {
	var v any = record
	if h.present != nil {
		v = h.present(record)
	}
	if h.texts == nil {
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return v
	}
	for prefix, text := range h.texts(&record) {
		for key, value := range domain.FormFields(prefix, *text) {
			obj[key], _ = json.Marshal(value)
		}
	}
	return obj
}

// read decodes a record body. Flat per-language fields (nameFr, ...) are
// lifted out before the strict decode and applied over the nested values.
func (h *recordHandler[T]) read(r *http.Request) (*T, error) {
	data, err := readBody(r)
	if err != nil {
		return nil, err
	}
	form, data, err := h.splitForm(data)
	if err != nil {
		return nil, err
	}
	record, err := h.decode(data)
	if err != nil {
		return nil, err
	}
	if h.texts != nil && len(form) > 0 {
		for prefix, text := range h.texts(record) {
			text.ApplyForm(prefix, form)
		}
	}
	return record, nil
}

func (h *recordHandler[T]) splitForm(data []byte) (map[string]string, []byte, error) {
	if h.texts == nil {
		return nil, data, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, domain.Invalid("body", "invalid json: "+err.Error())
	}
	form := map[string]string{}
	verr := &domain.ValidationError{}
	for prefix := range h.texts(new(T)) {
		for key := range domain.FormFields(prefix, domain.LocalizedText{}) {
			value, ok := raw[key]
			if !ok {
				continue
			}
			delete(raw, key)
			var str *string
			if err := json.Unmarshal(value, &str); err != nil {
				verr.Add(key, "must be a string")
				continue
			}
			if str != nil {
				form[key] = *str
			} else {
				form[key] = ""
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, nil, err
	}
	if len(form) == 0 {
		return form, data, nil
	}
	stripped, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, err
	}
	return form, stripped, nil
}

func (h *recordHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]any, 0, len(records))
	for _, rec := range records {
		out = append(out, h.view(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *recordHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	record, err := h.read(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setID(record, "")
	res, err := h.records.Create(r.Context(), record)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationResponse{Record: h.view(*record), Snapshot: res.Snapshot, Warnings: res.Warnings})
}

func (h *recordHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	record, err := h.read(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.setID(record, mux.Vars(r)["id"])
	res, err := h.records.Update(r.Context(), record)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Record: h.view(*record), Snapshot: res.Snapshot, Warnings: res.Warnings})
}

func (h *recordHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.records.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Snapshot: res.Snapshot, Warnings: res.Warnings})
}

func decodeRecord[T any](data []byte) (*T, error) {
	var record T
	if err := decodeBytes(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// agencyPayload lets staff enter the commission as a whole percent. When
// present it wins over commissionRate.
type agencyPayload struct {
	domain.Agency
	CommissionPercent *decimal.Decimal `json:"commissionPercent,omitempty"`
}

func decodeAgency(data []byte) (*domain.Agency, error) {
	var p agencyPayload
	if err := decodeBytes(data, &p); err != nil {
		return nil, err
	}
	a := p.Agency
	if p.CommissionPercent != nil {
		rate := pricing.PercentToFraction(*p.CommissionPercent)
		a.CommissionRate = &rate
	}
	return &a, nil
}

func presentAgency(a domain.Agency) any {
	p := agencyPayload{Agency: a}
	if a.CommissionRate != nil {
		percent := pricing.FractionToPercent(*a.CommissionRate)
		p.CommissionPercent = &percent
	}
	return p
}

func agencyTexts(a *domain.Agency) map[string]*domain.LocalizedText {
	return map[string]*domain.LocalizedText{"name": &a.Name}
}

func categoryTexts(c *domain.Category) map[string]*domain.LocalizedText {
	return map[string]*domain.LocalizedText{"name": &c.Name}
}

func vehicleTexts(v *domain.Vehicle) map[string]*domain.LocalizedText {
	return map[string]*domain.LocalizedText{"name": &v.Name, "description": &v.Description}
}

func optionTexts(o *domain.Option) map[string]*domain.LocalizedText {
	return map[string]*domain.LocalizedText{"name": &o.Name, "description": &o.Description}
}
