package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"webcraft/models"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []models.Email
	fail func(models.Email) error
}

func (m *fakeMailer) Send(_ context.Context, email models.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		if err := m.fail(email); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *fakeMailer) emails() []models.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Email(nil), m.sent...)
}

type fakeCalendar struct {
	link      string
	err       error
	meetings  []Meeting
	cancelled []string
}

func (c *fakeCalendar) CreateMeeting(_ context.Context, m Meeting) (ScheduledMeeting, error) {
	c.meetings = append(c.meetings, m)
	if c.err != nil {
		return ScheduledMeeting{}, c.err
	}
	return ScheduledMeeting{EventID: fmt.Sprintf("evt%d", len(c.meetings)), MeetLink: c.link}, nil
}

func (c *fakeCalendar) CancelMeeting(_ context.Context, eventID string) error {
	c.cancelled = append(c.cancelled, eventID)
	return nil
}

type scheduled struct {
	reminder models.ConsultationReminder
	fireAt   time.Time
}

type fakeScheduler struct {
	calls []scheduled
}

func (f *fakeScheduler) ScheduleReminder(_ context.Context, r models.ConsultationReminder, fireAt time.Time) error {
	f.calls = append(f.calls, scheduled{reminder: r, fireAt: fireAt})
	return nil
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var testPolicy = Policy{
	From:            "hello@webcraft.dev",
	AdminRecipients: []string{"team@webcraft.dev"},
	AlwaysBCC:       []string{"archive@webcraft.dev"},
}

var testNow = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
