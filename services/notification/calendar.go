package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"webcraft/models"
)

// ErrInvalidSchedule is returned when a booking's date or slot cannot be
// turned into an instant.
var ErrInvalidSchedule = errors.New("invalid consultation date or time")

// Meeting is what a Calendar needs to create an event.
type Meeting struct {
	Summary     string
	Description string
	Start       time.Time
	Duration    time.Duration
	Attendees   []string
}

// ScheduledMeeting identifies a created event. MeetLink may be empty when
// the provider did not attach a conference.
type ScheduledMeeting struct {
	EventID  string
	MeetLink string
}

// Calendar creates consultation events and cancels the ones nobody was told
// about.
type Calendar interface {
	CreateMeeting(ctx context.Context, m Meeting) (ScheduledMeeting, error)
	CancelMeeting(ctx context.Context, eventID string) error
}

type GoogleCalendar struct {
	service    *calendar.Service
	calendarID string
}

func NewGoogleCalendar(service *calendar.Service, calendarID string) *GoogleCalendar {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{service: service, calendarID: calendarID}
}

// NewGoogleCalendarFromFile authenticates with a service-account key. When
// subject is set the account impersonates that user through domain-wide
// delegation, which Google requires before it will invite attendees.
func NewGoogleCalendarFromFile(ctx context.Context, credentialsFile, subject, calendarID string) (*GoogleCalendar, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("calendar: read credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("calendar: parse credentials: %w", err)
	}
	jwtCfg.Subject = subject

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return NewGoogleCalendar(svc, calendarID), nil
}

func (g *GoogleCalendar) CreateMeeting(ctx context.Context, m Meeting) (ScheduledMeeting, error) {
	tz := m.Start.Location().String()
	event := &calendar.Event{
		Summary:     m.Summary,
		Description: m.Description,
		Start: &calendar.EventDateTime{
			DateTime: m.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: m.Start.Add(m.Duration).Format(time.RFC3339),
			TimeZone: tz,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, email := range m.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := g.service.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return ScheduledMeeting{}, fmt.Errorf("calendar: insert event: %w", err)
	}
	return ScheduledMeeting{EventID: created.Id, MeetLink: created.HangoutLink}, nil
}

// CancelMeeting deletes the event and tells the attendees.
func (g *GoogleCalendar) CancelMeeting(ctx context.Context, eventID string) error {
	err := g.service.Events.Delete(g.calendarID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("calendar: delete event %s: %w", eventID, err)
	}
	return nil
}

// ConsultationStart combines the booking date with its slot label in loc.
//
// Date pickers usually serialise the chosen day as UTC midnight, so such a
// timestamp is read as a calendar date. Any other timestamp is converted to
// loc first. Plain YYYY-MM-DD is accepted too.
func ConsultationStart(date, slot string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	var y int
	var mo time.Month
	var d int
	if day, err := time.Parse("2006-01-02", date); err == nil {
		y, mo, d = day.Date()
	} else {
		ts, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidSchedule, date)
		}
		u := ts.UTC()
		if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 {
			y, mo, d = u.Date()
		} else {
			y, mo, d = ts.In(loc).Date()
		}
	}

	if !models.IsTimeSlot(slot) {
		return time.Time{}, fmt.Errorf("%w: slot %q", ErrInvalidSchedule, slot)
	}
	clock, err := time.Parse(models.SlotLayout, slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: slot %q", ErrInvalidSchedule, slot)
	}
	return time.Date(y, mo, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
