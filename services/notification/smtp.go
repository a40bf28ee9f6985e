package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"webcraft/models"
)

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer sends through an SMTP relay, one connection per message.
type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(opts SMTPOptions) (*SMTPMailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}
	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to create client: %w", err)
	}
	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email models.Email) error {
	msg, err := buildMessage(email)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: send %q: %w", email.Subject, err)
	}
	return nil
}

func buildMessage(email models.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("smtp: invalid from address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("smtp: invalid recipient: %w", err)
	}
	if len(email.BCC) > 0 {
		if err := msg.Bcc(email.BCC...); err != nil {
			return nil, fmt.Errorf("smtp: invalid bcc: %w", err)
		}
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("smtp: invalid reply-to: %w", err)
		}
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}
	return msg, nil
}
