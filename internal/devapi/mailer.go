package devapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/config"
)

// Mailer delivers a contact message.
type Mailer interface {
	Send(ctx context.Context, msg api.ContactMessage) error
}

// SMTPMailer sends contact messages through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(_ context.Context, msg api.ContactMessage) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}

	if err := m.send(m.cfg.Host+":"+m.cfg.Port, smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host), m.cfg.User, []string{to}, composeMail(m.cfg.User, to, msg)); err != nil {
		m.logger.Error("failed to send contact email", slog.String("error", err.Error()))
		return fmt.Errorf("send contact email: %w", err)
	}
	m.logger.Info("contact email sent", slog.String("name", msg.Name), slog.String("email", msg.Email))
	return nil
}

func composeMail(from, to string, msg api.ContactMessage) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Subject, msg.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + headerSafe(msg.Subject) + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe drops CR and LF so user input cannot add headers.
func headerSafe(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != '\r' && r != '\n' {
			out = append(out, r)
		}
	}
	return string(out)
}

// LogMailer only logs messages. It is used when SMTP is not configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(_ context.Context, msg api.ContactMessage) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("contact message received",
		slog.String("name", msg.Name),
		slog.String("email", msg.Email),
		slog.String("subject", msg.Subject),
		slog.Int("length", len(msg.Message)),
	)
	return nil
}
