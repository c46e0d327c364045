package mail

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/taskforge/backend/internal/config"
	"github.com/taskforge/backend/usecase"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a gomail-backed Mailer. Each Send dials a fresh
// SMTP connection; there is no pooling or retry.
func NewSMTPMailer(cfg config.SMTPConfig) usecase.Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a Mailer that only logs, for environments without
// SMTP configured.
func NewLogMailer(logger *zap.Logger) usecase.Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, recipient, subject, body string) error {
	m.logger.Info("mail suppressed (no smtp host configured)",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}
