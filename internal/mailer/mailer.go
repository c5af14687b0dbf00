// Package mailer delivers the transactional e-mails the board sends on
// intake, completion and reopening. Delivery is always best-effort:
// callers launch sends asynchronously and transitions never wait on
// the SMTP session.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/config"
	"github.com/sevenboard/board-api/internal/domain"
)

// TemplateKind selects which message body a notification renders.
type TemplateKind string

const (
	TemplateConfirmation TemplateKind = "confirmation"
	TemplateCompletion   TemplateKind = "completion"
	TemplateReopened     TemplateKind = "reopened"
)

// Mailer renders and sends solicitation e-mails.
type Mailer interface {
	Send(to string, kind TemplateKind, sol *domain.Solicitation) error
}

type smtpMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// New builds an SMTP-backed mailer. When SMTP is not configured the
// returned mailer logs and drops every message.
func New(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if !cfg.Enabled() {
		logger.Warn("SMTP_HOST not set; outbound e-mail disabled")
		return &noopMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg, logger: logger}
}

func (m *smtpMailer) Send(to string, kind TemplateKind, sol *domain.Solicitation) error {
	if to == "" {
		return nil
	}
	subject, body, err := render(kind, sol)
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if err := m.deliver(to, subject, body); err != nil {
		return fmt.Errorf("deliver %s to %s: %w", kind, to, err)
	}
	m.logger.Info("email sent",
		zap.String("to", to),
		zap.String("template", string(kind)),
		zap.String("protocol", sol.ProtocolCode))
	return nil
}

// deliver speaks SMTP over implicit TLS (port 465 style).
func (m *smtpMailer) deliver(to, subject, htmlBody string) error {
	msg := []byte(
		"From: " + m.cfg.From + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.cfg.Username); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(to string, kind TemplateKind, sol *domain.Solicitation) error {
	m.logger.Debug("email skipped, SMTP disabled",
		zap.String("to", to),
		zap.String("template", string(kind)))
	return nil
}
