package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"voltride-backoffice/internal/domain"
	"voltride-backoffice/internal/logger"
	"voltride-backoffice/internal/repository"
)

type settingsService struct {
	brand         string
	repo          repository.SettingsRepository
	notifications repository.NotificationSettingsRepository
	journal       journaler
}

func NewSettingsService(
	brand string,
	repo repository.SettingsRepository,
	notifications repository.NotificationSettingsRepository,
	journal repository.JournalRepository,
) SettingsService {
	return &settingsService{
		brand:         brand,
		repo:          repo,
		notifications: notifications,
		journal:       journaler{repo: journal, brand: brand},
	}
}

// orDefault maps a never-saved document to its defaults.
func orDefault[T any](doc *T, err error, def T) (T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return *doc, nil
}

func (s *settingsService) Widget(ctx context.Context) (domain.WidgetSettings, error) {
	doc, err := s.repo.GetWidget(ctx, s.brand)
	return orDefault(doc, err, domain.DefaultWidgetSettings())
}

func (s *settingsService) Operator(ctx context.Context) (domain.OperatorSettings, error) {
	doc, err := s.repo.GetOperator(ctx, s.brand)
	return orDefault(doc, err, domain.DefaultOperatorSettings())
}

func (s *settingsService) Accounting(ctx context.Context) (domain.AccountingSettings, error) {
	doc, err := s.repo.GetAccounting(ctx, s.brand)
	return orDefault(doc, err, domain.DefaultAccountingSettings())
}

func (s *settingsService) Entreprise(ctx context.Context) (domain.EntrepriseSettings, error) {
	doc, err := s.repo.GetEntreprise(ctx, s.brand)
	return orDefault(doc, err, domain.EntrepriseSettings{})
}

func (s *settingsService) legal(ctx context.Context) (domain.LegalTexts, error) {
	doc, err := s.repo.GetLegalTexts(ctx, s.brand)
	return orDefault(doc, err, domain.LegalTexts{Brand: s.brand})
}

// Load reads every section concurrently. Sections never saved come back with
// their defaults; any other failure fails the whole load, so a settings page
// never shows defaults in place of stored values.
func (s *settingsService) Load(ctx context.Context) (*domain.BrandSettings, error) {
	logger.EnterMethod("settingsService.Load", "brand", s.brand)

	out := &domain.BrandSettings{Brand: s.brand}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Widget, err = s.Widget(gctx)
		return wrapSection(domain.SectionWidget, err)
	})
	g.Go(func() (err error) {
		out.Operator, err = s.Operator(gctx)
		return wrapSection(domain.SectionOperator, err)
	})
	g.Go(func() (err error) {
		out.Accounting, err = s.Accounting(gctx)
		return wrapSection(domain.SectionCompta, err)
	})
	g.Go(func() (err error) {
		out.Entreprise, err = s.Entreprise(gctx)
		return wrapSection(domain.SectionEntreprise, err)
	})
	g.Go(func() (err error) {
		out.Legal, err = s.legal(gctx)
		if err != nil {
			return fmt.Errorf("legal texts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		stored, err := s.notifications.List(gctx, s.brand)
		if err != nil {
			return fmt.Errorf("notification settings: %w", err)
		}
		out.Notifications = domain.NotificationMatrix(s.brand, stored)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.ExitMethodWithError("settingsService.Load", err)
		return nil, err
	}

	logger.ExitMethod("settingsService.Load", "brand", s.brand)
	return out, nil
}

func wrapSection(section domain.SettingsSection, err error) error {
	if err != nil {
		return fmt.Errorf("%s settings: %w", section, err)
	}
	return nil
}

func (s *settingsService) SaveWidget(ctx context.Context, w *domain.WidgetSettings) error {
	if err := domain.Check(w); err != nil {
		return err
	}
	if err := s.repo.SaveWidget(ctx, s.brand, w); err != nil {
		return fmt.Errorf("save widget settings: %w", err)
	}
	s.journal.record(ctx, "settings", string(domain.SectionWidget), domain.JournalSave, w)
	return nil
}

func (s *settingsService) SaveOperator(ctx context.Context, o *domain.OperatorSettings) error {
	if err := domain.Check(o); err != nil {
		return err
	}
	if err := s.repo.SaveOperator(ctx, s.brand, o); err != nil {
		return fmt.Errorf("save operator settings: %w", err)
	}
	s.journal.record(ctx, "settings", string(domain.SectionOperator), domain.JournalSave, o)
	return nil
}

func (s *settingsService) SaveAccounting(ctx context.Context, a *domain.AccountingSettings) error {
	if err := domain.Check(a); err != nil {
		return err
	}
	if err := s.repo.SaveAccounting(ctx, s.brand, a); err != nil {
		return fmt.Errorf("save accounting settings: %w", err)
	}
	s.journal.record(ctx, "settings", string(domain.SectionCompta), domain.JournalSave, a)
	return nil
}

func (s *settingsService) SaveEntreprise(ctx context.Context, e *domain.EntrepriseSettings) error {
	if err := domain.Check(e); err != nil {
		return err
	}
	if err := s.repo.SaveEntreprise(ctx, s.brand, e); err != nil {
		return fmt.Errorf("save entreprise settings: %w", err)
	}
	s.journal.record(ctx, "settings", string(domain.SectionEntreprise), domain.JournalSave, e)
	return nil
}

func (s *settingsService) SaveLegalTexts(ctx context.Context, t *domain.LegalTexts) error {
	t.Brand = s.brand
	// A document may be left blank; a written one needs its French version.
	verr := &domain.ValidationError{}
	for field, doc := range map[string]domain.LocalizedText{
		"cgvResume":       t.CGVResume,
		"cgvComplete":     t.CGVComplete,
		"rgpd":            t.RGPD,
		"mentionsLegales": t.MentionsLegales,
	} {
		if !doc.IsZero() {
			doc.RequireFR(field, verr)
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if err := s.repo.SaveLegalTexts(ctx, s.brand, t); err != nil {
		return fmt.Errorf("save legal texts: %w", err)
	}
	s.journal.record(ctx, "settings", "legal", domain.JournalSave, t)
	return nil
}

// SaveNotifications posts one row per notification type. Every row is
// attempted; failures are joined and the rows that did save are returned.
func (s *settingsService) SaveNotifications(ctx context.Context, settings []domain.NotificationSetting) ([]domain.NotificationSetting, error) {
	logger.EnterMethod("settingsService.SaveNotifications", "count", len(settings))

	verr := &domain.ValidationError{}
	known := make(map[domain.Role]bool, len(domain.Roles))
	for _, r := range domain.Roles {
		known[r] = true
	}
	seen := make(map[domain.NotificationType]bool, len(settings))
	for i, st := range settings {
		field := fmt.Sprintf("notifications[%d]", i)
		if st.Type == "" {
			verr.Add(field+".type", "is required")
			continue
		}
		if seen[st.Type] {
			verr.Add(field+".type", "duplicate type "+string(st.Type))
		}
		seen[st.Type] = true
		for role := range st.Roles {
			if !known[role] {
				verr.Add(field+".roles", "unknown role "+string(role))
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		logger.ExitMethodWithError("settingsService.SaveNotifications", err)
		return nil, err
	}

	var (
		saved []domain.NotificationSetting
		errs  []error
	)
	for _, st := range settings {
		st.Brand = s.brand
		if st.Roles == nil {
			st.Roles = map[domain.Role]bool{}
		}
		if err := s.notifications.Save(ctx, &st); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", st.Type, err))
			continue
		}
		s.journal.record(ctx, "notification-setting", string(st.Type), domain.JournalSave, st)
		saved = append(saved, st)
	}

	if err := errors.Join(errs...); err != nil {
		logger.ExitMethodWithError("settingsService.SaveNotifications", err, "saved", len(saved))
		return saved, fmt.Errorf("save notification settings: %w", err)
	}
	logger.ExitMethod("settingsService.SaveNotifications", "saved", len(saved))
	return saved, nil
}
