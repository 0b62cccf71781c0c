package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"voltride-backoffice/internal/config"
	"voltride-backoffice/internal/logger"
)

// NewEmailService picks the transport named by the mail configuration.
func NewEmailService(cfg *config.Config) (EmailService, error) {
	switch cfg.Mail.Provider {
	case "smtp":
		return NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Mail.From, cfg.Mail.FromName), nil
	case "sendgrid":
		return NewSendGridEmailService(cfg.SendGrid.APIKey, cfg.Mail.From, cfg.Mail.FromName), nil
	case "log", "":
		return NewLogEmailService(), nil
	}
	return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Mail.Provider)
}

// smtpEmailService sends through an SMTP relay.
type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPEmailService(host string, port int, username, password, from, fromName string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

func (s *smtpEmailService) Send(ctx context.Context, e Email) error {
	if err := checkEmail(e); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", e.To...)
	m.SetHeader("Subject", e.Subject)
	m.SetBody("text/plain", e.Text)
	if e.HTML != "" {
		m.AddAlternative("text/html", e.HTML)
	}
	for _, a := range e.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}

	logger.ExternalServiceCall("smtp", "send", "to", strings.Join(e.To, ","), "subject", e.Subject)
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	err := d.DialAndSend(m)
	logger.ExternalServiceResult("smtp", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendgridEmailService struct {
	send     func(*mail.SGMailV3) (int, string, error)
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	client := sendgrid.NewSendClient(apiKey)
	return &sendgridEmailService{
		send: func(m *mail.SGMailV3) (int, string, error) {
			resp, err := client.Send(m)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
		from:     from,
		fromName: fromName,
	}
}

func (s *sendgridEmailService) Send(ctx context.Context, e Email) error {
	if err := checkEmail(e); err != nil {
		return err
	}
	message := buildSendGridMessage(s.from, s.fromName, e)

	logger.ExternalServiceCall("sendgrid", "send", "to", strings.Join(e.To, ","), "subject", e.Subject)
	status, body, err := s.send(message)
	if err == nil && status >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", status, body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildSendGridMessage(from, fromName string, e Email) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(fromName, from))
	message.Subject = e.Subject

	p := mail.NewPersonalization()
	for _, to := range e.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)

	message.AddContent(mail.NewContent("text/plain", e.Text))
	if e.HTML != "" {
		message.AddContent(mail.NewContent("text/html", e.HTML))
	}
	for _, a := range e.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Data))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}
	return message
}

// logEmailService only logs; used in development.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) Send(ctx context.Context, e Email) error {
	if err := checkEmail(e); err != nil {
		return err
	}
	names := make([]string, 0, len(e.Attachments))
	for _, a := range e.Attachments {
		names = append(names, a.Filename)
	}
	logger.InfoContext(ctx, "Email not sent (log transport)",
		"to", strings.Join(e.To, ","), "subject", e.Subject, "attachments", strings.Join(names, ","))
	return nil
}

func checkEmail(e Email) error {
	if len(e.To) == 0 {
		return fmt.Errorf("email %q has no recipient", e.Subject)
	}
	return nil
}
