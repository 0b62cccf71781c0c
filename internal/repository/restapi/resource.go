package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"voltride-backoffice/internal/logger"
)

// wireRecord is a DTO that can be checked and converted to its domain record.
type wireRecord[T any] interface {
	toDomain() (T, error)
}

// resource implements list/create/update/delete on one collection path.
type resource[T any, D wireRecord[T]] struct {
	client *Client
	path   string
	name   string
}

func (r resource[T, D]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// list decodes every row and drops the ones that cannot be trusted.
func (r resource[T, D]) list(ctx context.Context) ([]T, error) {
	var rows []D
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			logger.WarnContext(ctx, "Dropping malformed record", "resource", r.name, "index", i, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// create POSTs body and returns the stored record. The response must carry
// a usable record: without one the new id is unknown.
func (r resource[T, D]) create(ctx context.Context, body D) (*T, error) {
	var stored *D
	if err := r.client.do(ctx, http.MethodPost, r.path, body, &stored); err != nil {
		return nil, err
	}
	rec, err := r.decodeStored(stored)
	if err == nil && rec == nil {
		err = errors.New("response carries no record")
	}
	if err != nil {
		logger.WarnContext(ctx, "Dropping malformed record", "resource", r.name, "method", http.MethodPost, "error", err)
		return nil, &DecodeError{Method: http.MethodPost, Path: r.path, Err: err}
	}
	return rec, nil
}

// update PUTs body. An empty or malformed response keeps the caller's copy.
func (r resource[T, D]) update(ctx context.Context, id string, body D) (*T, error) {
	var stored *D
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), body, &stored); err != nil {
		return nil, err
	}
	rec, err := r.decodeStored(stored)
	if err != nil {
		logger.WarnContext(ctx, "Dropping malformed record", "resource", r.name, "id", id, "method", http.MethodPut, "error", err)
		return nil, nil
	}
	return rec, nil
}

func (r resource[T, D]) delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

// decodeStored returns nil when the body was empty or null.
func (r resource[T, D]) decodeStored(stored *D) (*T, error) {
	if stored == nil {
		return nil, nil
	}
	rec, err := (*stored).toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
