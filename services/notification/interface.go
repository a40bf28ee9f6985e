package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"webcraft/models"
)

// ErrDeliveryFailed means not a single email of a submission went out.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// NotificationService turns form submissions into emails, calendar events
// and reminders.
type NotificationService interface {
	SendContactMessage(ctx context.Context, msg models.ContactMessage) (models.Delivery, error)
	BookConsultation(ctx context.Context, req models.ConsultationRequest) (models.Delivery, error)
	SubmitProject(ctx context.Context, req models.ProjectRequest) (models.Delivery, error)
	Subscribe(ctx context.Context, signup models.NewsletterSignup) (models.Delivery, error)
	MeetLink(ctx context.Context, bookingID string) (string, error)
	SendReminder(ctx context.Context, r models.ConsultationReminder) error
}

// ReminderScheduler queues a reminder to be sent at fireAt.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, r models.ConsultationReminder, fireAt time.Time) error
}

// Options wires a DefaultNotificationService. Only Mailer is required.
type Options struct {
	Mailer      Mailer
	Calendar    Calendar
	Policy      Policy
	MeetLinks   MeetLinkStore
	Subscribers SubscriberStore
	Reminders   ReminderScheduler
	Logger      *zap.Logger

	Location           *time.Location
	ConsultationLength time.Duration
	ReminderLead       time.Duration
	Now                func() time.Time
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	mailer      Mailer
	calendar    Calendar
	policy      Policy
	meetLinks   MeetLinkStore
	subscribers SubscriberStore
	reminders   ReminderScheduler
	logger      *zap.Logger

	loc                *time.Location
	consultationLength time.Duration
	reminderLead       time.Duration
	now                func() time.Time
}

func NewDefaultNotificationService(opts Options) (*DefaultNotificationService, error) {
	if opts.Mailer == nil {
		return nil, fmt.Errorf("notification service initialization error: mailer is nil")
	}
	s := &DefaultNotificationService{
		mailer:             opts.Mailer,
		calendar:           opts.Calendar,
		policy:             opts.Policy,
		meetLinks:          opts.MeetLinks,
		subscribers:        opts.Subscribers,
		reminders:          opts.Reminders,
		logger:             opts.Logger,
		loc:                opts.Location,
		consultationLength: opts.ConsultationLength,
		reminderLead:       opts.ReminderLead,
		now:                opts.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.consultationLength <= 0 {
		s.consultationLength = 30 * time.Minute
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// outbound is one email of a submission, labelled for logs and Delivery.Failures.
type outbound struct {
	label string
	email models.Email
}

// dispatch sends every email once. It fails only when all of them failed;
// otherwise the failures are recorded and the delivery is marked partial.
func (s *DefaultNotificationService) dispatch(ctx context.Context, kind string, out []outbound) (models.Delivery, error) {
	var d models.Delivery
	sent := 0
	for _, o := range out {
		if err := s.mailer.Send(ctx, o.email); err != nil {
			s.logger.Error("Email delivery failed",
				zap.String("kind", kind),
				zap.String("email", o.label),
				zap.Error(err),
			)
			d.Failures = append(d.Failures, o.label)
			continue
		}
		sent++
	}
	if sent == 0 {
		return d, fmt.Errorf("%s: %w", kind, ErrDeliveryFailed)
	}
	if len(d.Failures) > 0 {
		d.Partial = true
		s.logger.Warn("Partial delivery",
			zap.String("kind", kind),
			zap.Strings("failed", d.Failures),
			zap.Int("sent", sent),
		)
	}
	return d, nil
}

// adminOutbound renders an operator notification, if anyone is configured
// to receive it.
func (s *DefaultNotificationService) adminOutbound(tmpl, subject, replyTo string, data any) ([]outbound, error) {
	html, text, err := render(tmpl, data)
	if err != nil {
		return nil, err
	}
	email, ok := s.policy.adminEmail(subject, html, text, replyTo)
	if !ok {
		s.logger.Warn("No admin recipients configured", zap.String("template", tmpl))
		return nil, nil
	}
	return []outbound{{label: "admin", email: email}}, nil
}

func (s *DefaultNotificationService) clientOutbound(tmpl, subject, to string, data any) (outbound, error) {
	html, text, err := render(tmpl, data)
	if err != nil {
		return outbound{}, err
	}
	return outbound{label: "client", email: s.policy.clientEmail(to, subject, html, text)}, nil
}
