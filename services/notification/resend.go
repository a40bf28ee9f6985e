package notification

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"webcraft/models"
)

// ResendMailer sends through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, email models.Email) error {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Bcc:     email.BCC,
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: send %q: %w", email.Subject, err)
	}
	return nil
}
