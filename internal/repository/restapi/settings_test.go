package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltride-backoffice/internal/domain"
)

func TestSettingsRepository_Paths(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/settings/widget-voltride":
			w.Write([]byte(`{"primaryColor":"#000000","minRentalDays":2,"maxRentalDays":10}`))
		case "/api/brand-settings/VOLTRIDE":
			w.Write([]byte(`{"cgvResume":"Résumé"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	repo := NewSettingsRepository(c)
	ctx := context.Background()

	w, err := repo.GetWidget(ctx, "VOLTRIDE")
	require.NoError(t, err)
	assert.Equal(t, 2, w.MinRentalDays)

	legal, err := repo.GetLegalTexts(ctx, "voltride")
	require.NoError(t, err)
	assert.Equal(t, "VOLTRIDE", legal.Brand)
	assert.Equal(t, "Résumé", legal.CGVResume.FR)

	_, err = repo.GetAccounting(ctx, "VOLTRIDE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{
		"GET /api/settings/widget-voltride",
		"GET /api/brand-settings/VOLTRIDE",
		"GET /api/settings/compta-voltride",
	}, paths)
}

func TestSettingsRepository_SaveIsPut(t *testing.T) {
	var method string
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	})

	op := domain.DefaultOperatorSettings()
	require.NoError(t, NewSettingsRepository(c).SaveOperator(context.Background(), "MOTOR-RENT", &op))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, 24.0, body["returnReminderHours"])
}

func TestNotificationSettingsRepository(t *testing.T) {
	var posted []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "VOLTRIDE", r.URL.Query().Get("brand"))
			w.Write([]byte(`[
				{"id":1,"type":"NEW_BOOKING","brand":"VOLTRIDE","roles":{"ADMIN":true,"OPERATOR":true}},
				{"id":2,"type":"NEW_BOOKING","brand":"MOTOR-RENT","roles":{"ADMIN":true}},
				{"id":3,"brand":"VOLTRIDE"}
			]`))
		case http.MethodPost:
			var m map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
			posted = append(posted, m)
			w.Write([]byte(`{"id":"n9","type":"CHECK_IN"}`))
		}
	})
	repo := NewNotificationSettingsRepository(c)

	rows, err := repo.List(context.Background(), "VOLTRIDE")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].VisibleTo(domain.RoleOperator))

	s := &domain.NotificationSetting{Type: domain.NotificationCheckIn, Brand: "VOLTRIDE", Roles: map[domain.Role]bool{domain.RoleAdmin: true}}
	require.NoError(t, repo.Save(context.Background(), s))
	assert.Equal(t, "n9", s.ID)
	require.Len(t, posted, 1)
	assert.Equal(t, "CHECK_IN", posted[0]["type"])
}
