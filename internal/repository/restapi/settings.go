package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

type settingsRepository struct {
	client *Client
}

func NewSettingsRepository(c *Client) repository.SettingsRepository {
	return &settingsRepository{client: c}
}

// sectionPath builds /api/settings/{section}-{brand}; keys are lower case.
func sectionPath(section domain.SettingsSection, brand string) string {
	return "/api/settings/" + url.PathEscape(fmt.Sprintf("%s-%s", section, strings.ToLower(brand)))
}

func legalPath(brand string) string {
	return "/api/brand-settings/" + url.PathEscape(strings.ToUpper(brand))
}

func getDocument[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var doc T
	if err := c.do(ctx, http.MethodGet, path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// putDocument upserts; the response body is ignored.
func putDocument(ctx context.Context, c *Client, path string, doc any) error {
	return c.do(ctx, http.MethodPut, path, doc, nil)
}

func (r *settingsRepository) GetWidget(ctx context.Context, brand string) (*domain.WidgetSettings, error) {
	return getDocument[domain.WidgetSettings](ctx, r.client, sectionPath(domain.SectionWidget, brand))
}

func (r *settingsRepository) SaveWidget(ctx context.Context, brand string, s *domain.WidgetSettings) error {
	return putDocument(ctx, r.client, sectionPath(domain.SectionWidget, brand), s)
}

func (r *settingsRepository) GetOperator(ctx context.Context, brand string) (*domain.OperatorSettings, error) {
	return getDocument[domain.OperatorSettings](ctx, r.client, sectionPath(domain.SectionOperator, brand))
}

func (r *settingsRepository) SaveOperator(ctx context.Context, brand string, s *domain.OperatorSettings) error {
	return putDocument(ctx, r.client, sectionPath(domain.SectionOperator, brand), s)
}

func (r *settingsRepository) GetAccounting(ctx context.Context, brand string) (*domain.AccountingSettings, error) {
	return getDocument[domain.AccountingSettings](ctx, r.client, sectionPath(domain.SectionCompta, brand))
}

func (r *settingsRepository) SaveAccounting(ctx context.Context, brand string, s *domain.AccountingSettings) error {
	return putDocument(ctx, r.client, sectionPath(domain.SectionCompta, brand), s)
}

func (r *settingsRepository) GetEntreprise(ctx context.Context, brand string) (*domain.EntrepriseSettings, error) {
	return getDocument[domain.EntrepriseSettings](ctx, r.client, sectionPath(domain.SectionEntreprise, brand))
}

func (r *settingsRepository) SaveEntreprise(ctx context.Context, brand string, s *domain.EntrepriseSettings) error {
	return putDocument(ctx, r.client, sectionPath(domain.SectionEntreprise, brand), s)
}

func (r *settingsRepository) GetLegalTexts(ctx context.Context, brand string) (*domain.LegalTexts, error) {
	t, err := getDocument[domain.LegalTexts](ctx, r.client, legalPath(brand))
	if err != nil {
		return nil, err
	}
	if t.Brand == "" {
		t.Brand = strings.ToUpper(brand)
	}
	return t, nil
}

func (r *settingsRepository) SaveLegalTexts(ctx context.Context, brand string, t *domain.LegalTexts) error {
	doc := *t
	doc.Brand = strings.ToUpper(brand)
	return putDocument(ctx, r.client, legalPath(brand), doc)
}

type notificationSettingsRepository struct {
	client *Client
}

func NewNotificationSettingsRepository(c *Client) repository.NotificationSettingsRepository {
	return &notificationSettingsRepository{client: c}
}

const notificationSettingsPath = "/api/notification-settings"

// List returns the stored rows of brand. Rows of other brands are dropped
// even when the repository ignores the query filter.
func (r *notificationSettingsRepository) List(ctx context.Context, brand string) ([]domain.NotificationSetting, error) {
	var rows []notificationSettingDTO
	path := notificationSettingsPath + "?brand=" + url.QueryEscape(brand)
	if err := r.client.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.NotificationSetting, 0, len(rows))
	for i, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			logger.WarnContext(ctx, "Dropping malformed record", "resource", "notification-setting", "index", i, "error", err)
			continue
		}
		if s.Brand != "" && !strings.EqualFold(s.Brand, brand) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Save upserts one notification type with a single POST.
func (r *notificationSettingsRepository) Save(ctx context.Context, s *domain.NotificationSetting) error {
	var stored notificationSettingDTO
	if err := r.client.do(ctx, http.MethodPost, notificationSettingsPath, toNotificationSettingDTO(*s), &stored); err != nil {
		return err
	}
	if stored.ID != "" {
		s.ID = string(stored.ID)
	}
	return nil
}
