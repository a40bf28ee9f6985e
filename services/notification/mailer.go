package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"webcraft/config"
	"webcraft/models"
)

// Mailer delivers one email. Implementations make a single attempt.
type Mailer interface {
	Send(ctx context.Context, email models.Email) error
}

// NewMailer builds the mailer selected by MAIL_PROVIDER.
func NewMailer(cfg *config.Config, logger *zap.Logger) (Mailer, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		return NewSMTPMailer(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	case config.MailProviderResend:
		return NewResendMailer(cfg.ResendAPIKey), nil
	case config.MailProviderLog:
		return &LogMailer{Logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
}

// LogMailer only logs. Used in development.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) Send(_ context.Context, email models.Email) error {
	m.Logger.Info("email (not sent)",
		zap.Strings("to", email.To),
		zap.Strings("bcc", email.BCC),
		zap.String("subject", email.Subject),
	)
	return nil
}
