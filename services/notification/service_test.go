package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcraft/models"
)

type harness struct {
	svc       *DefaultNotificationService
	mailer    *fakeMailer
	calendar  *fakeCalendar
	scheduler *fakeScheduler
	links     *RedisMeetLinkStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	_, client := newRedis(t)
	h := &harness{
		mailer:    &fakeMailer{},
		calendar:  &fakeCalendar{link: "https://meet.google.com/abc-defg-hij"},
		scheduler: &fakeScheduler{},
		links:     NewRedisMeetLinkStore(client, time.Hour),
	}
	svc, err := NewDefaultNotificationService(Options{
		Mailer:       h.mailer,
		Calendar:     h.calendar,
		Policy:       testPolicy,
		MeetLinks:    h.links,
		Subscribers:  NewRedisSubscriberStore(client),
		Reminders:    h.scheduler,
		ReminderLead: 24 * time.Hour,
		Now:          func() time.Time { return testNow },
	})
	require.NoError(t, err)
	h.svc = svc
	return h
}

func booking() models.ConsultationRequest {
	return models.ConsultationRequest{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+1 555 0100",
		Date:        "2030-03-04T00:00:00Z",
		Time:        "10:00 AM",
		ProjectType: models.ProjectWebsite,
		Budget:      "5k-10k",
		Message:     "Let's talk",
	}
}

func TestNewDefaultNotificationServiceRequiresMailer(t *testing.T) {
	_, err := NewDefaultNotificationService(Options{})
	assert.Error(t, err)
}

func TestSendContactMessageNotifiesAdminAndSender(t *testing.T) {
	h := newHarness(t)

	d, err := h.svc.SendContactMessage(context.Background(), models.ContactMessage{
		Name: "Jane", Email: "jane@example.com", Service: "SEO", Message: "Hello there",
	})
	require.NoError(t, err)
	assert.False(t, d.Partial)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)

	admin := sent[0]
	assert.Equal(t, []string{"team@webcraft.dev"}, admin.To)
	assert.Equal(t, []string{"archive@webcraft.dev"}, admin.BCC)
	assert.Equal(t, "jane@example.com", admin.ReplyTo)
	assert.Equal(t, "hello@webcraft.dev", admin.From)
	assert.Contains(t, admin.HTML, "Hello there")
	assert.Contains(t, admin.Text, "Service: SEO")

	client := sent[1]
	assert.Equal(t, []string{"jane@example.com"}, client.To)
	assert.Equal(t, []string{"archive@webcraft.dev"}, client.BCC)
}

func TestContactMessageIsEscapedInHTML(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.SendContactMessage(context.Background(), models.ContactMessage{
		Name: "Jane", Email: "jane@example.com", Service: "SEO", Message: "<script>x</script>",
	})
	require.NoError(t, err)

	admin := h.mailer.emails()[0]
	assert.NotContains(t, admin.HTML, "<script>")
	assert.Contains(t, admin.Text, "<script>x</script>")
}

func TestBookConsultationCreatesMeetingAndReminder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d, err := h.svc.BookConsultation(ctx, booking())
	require.NoError(t, err)
	assert.NotEmpty(t, d.BookingID)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", d.MeetLink)

	require.Len(t, h.calendar.meetings, 1)
	m := h.calendar.meetings[0]
	assert.Equal(t, time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), m.Start)
	assert.Equal(t, 30*time.Minute, m.Duration)
	assert.Equal(t, []string{"jane@example.com"}, m.Attendees)

	link, err := h.svc.MeetLink(ctx, d.BookingID)
	require.NoError(t, err)
	assert.Equal(t, d.MeetLink, link)

	require.Len(t, h.scheduler.calls, 1)
	call := h.scheduler.calls[0]
	assert.Equal(t, time.Date(2030, 3, 3, 10, 0, 0, 0, time.UTC), call.fireAt)
	assert.Equal(t, d.BookingID, call.reminder.BookingID)
	assert.Equal(t, "10:00 AM", call.reminder.Slot)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Text, d.MeetLink)
	assert.Contains(t, sent[1].Text, d.BookingID)
}

func TestBookConsultationSurvivesCalendarFailure(t *testing.T) {
	h := newHarness(t)
	h.calendar.err = errors.New("quota exceeded")

	d, err := h.svc.BookConsultation(context.Background(), booking())
	require.NoError(t, err)
	assert.Empty(t, d.MeetLink)
	assert.NotEmpty(t, d.BookingID)

	_, err = h.svc.MeetLink(context.Background(), d.BookingID)
	assert.ErrorIs(t, err, ErrNotFound)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Text, "We will send the meeting link separately.")
}

func TestBookConsultationRejectsUnknownSlot(t *testing.T) {
	h := newHarness(t)
	req := booking()
	req.Time = "07:30 PM"

	_, err := h.svc.BookConsultation(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Empty(t, h.mailer.emails())
	assert.Empty(t, h.calendar.meetings)
}

func TestBookConsultationSkipsReminderInThePast(t *testing.T) {
	h := newHarness(t)
	req := booking()
	req.Date = "2030-01-01"

	_, err := h.svc.BookConsultation(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, h.scheduler.calls)
}

func TestPartialDeliveryIsNotAnError(t *testing.T) {
	h := newHarness(t)
	h.mailer.fail = func(e models.Email) error {
		if e.To[0] == "team@webcraft.dev" {
			return errors.New("mailbox full")
		}
		return nil
	}

	d, err := h.svc.BookConsultation(context.Background(), booking())
	require.NoError(t, err)
	assert.True(t, d.Partial)
	assert.Equal(t, []string{"admin"}, d.Failures)
	assert.NotEmpty(t, d.BookingID)
	assert.Empty(t, h.calendar.cancelled)
}

func TestTotalDeliveryFailure(t *testing.T) {
	h := newHarness(t)
	h.mailer.fail = func(models.Email) error { return errors.New("smtp down") }

	_, err := h.svc.BookConsultation(context.Background(), booking())
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Empty(t, h.scheduler.calls)
	require.Len(t, h.calendar.meetings, 1)
	assert.Equal(t, []string{"evt1"}, h.calendar.cancelled)
}

func TestSubmitProject(t *testing.T) {
	h := newHarness(t)
	req := models.ProjectRequest{
		ProjectType:  models.ProjectEcommerce,
		BusinessInfo: models.BusinessInfo{Name: "Acme", Industry: "Retail", Size: "1-10"},
		Requirements: models.Requirements{
			Features: models.NewStringSet("cart", "payments"),
			Design:   "modern", Timeline: "1-3 months", Budget: "10k-25k",
		},
		Technical: models.Technical{Technologies: models.NewStringSet("react"), Hosting: "managed", Domain: "have"},
		Consultation: models.ConsultationDetails{
			Name: "Jane", Email: "jane@example.com", Date: "2030-03-04T00:00:00Z", Time: "10:00 AM",
			MeetLink: "https://meet.google.com/abc-defg-hij",
		},
	}

	d, err := h.svc.SubmitProject(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.Consultation.MeetLink, d.MeetLink)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].Subject, "Acme")
	assert.Contains(t, sent[0].Text, "Features: cart, payments")
	assert.Equal(t, []string{"jane@example.com"}, sent[1].To)
}

func TestSubmitProjectFallsBackToBusinessEmail(t *testing.T) {
	h := newHarness(t)
	req := models.ProjectRequest{
		ProjectType:  models.ProjectWebsite,
		BusinessInfo: models.BusinessInfo{Name: "Acme", Email: "ops@acme.test"},
	}

	_, err := h.svc.SubmitProject(context.Background(), req)
	require.NoError(t, err)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"ops@acme.test"}, sent[1].To)
}

func TestSubscribeSendsWelcomeOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	d, err := h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "Jane@Example.com"})
	require.NoError(t, err)
	assert.False(t, d.AlreadySubscribed)
	assert.Len(t, h.mailer.emails(), 2)

	d, err = h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, d.AlreadySubscribed)
	assert.Len(t, h.mailer.emails(), 2)
}

func TestSubscribeRetryAfterTotalFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.mailer.fail = func(models.Email) error { return errors.New("smtp down") }

	_, err := h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "jane@example.com"})
	require.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Empty(t, h.mailer.emails())

	h.mailer.fail = nil
	d, err := h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.False(t, d.AlreadySubscribed)

	sent := h.mailer.emails()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].To, "jane@example.com")
}

func TestSubscribeKeepsAddressOnPartialDelivery(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.mailer.fail = func(e models.Email) error {
		for _, to := range e.To {
			if to == "jane@example.com" {
				return nil
			}
		}
		return errors.New("admin mailbox full")
	}

	d, err := h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, d.Partial)

	d, err = h.svc.Subscribe(ctx, models.NewsletterSignup{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, d.AlreadySubscribed)
}

func TestSendReminder(t *testing.T) {
	h := newHarness(t)

	err := h.svc.SendReminder(context.Background(), models.ConsultationReminder{
		BookingID: "b1", Name: "Jane", Email: "jane@example.com",
		StartsAt: time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	sent := h.mailer.emails()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Text, "March 4, 2030")

	assert.Error(t, h.svc.SendReminder(context.Background(), models.ConsultationReminder{}))
}
