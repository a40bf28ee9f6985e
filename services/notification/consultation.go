package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webcraft/models"
)

type consultationEmail struct {
	Booking   models.ConsultationRequest
	Start     time.Time
	BookingID string
	MeetLink  string
}

// BookConsultation schedules the call and notifies both sides. A calendar
// failure only costs the meet link; the booking still goes through. When no
// email can be sent the event is cancelled again.
func (s *DefaultNotificationService) BookConsultation(ctx context.Context, req models.ConsultationRequest) (models.Delivery, error) {
	start, err := ConsultationStart(req.Date, req.Time, s.loc)
	if err != nil {
		return models.Delivery{}, err
	}

	bookingID := uuid.NewString()
	logger := s.logger.With(zap.String("bookingId", bookingID))
	meeting := s.createMeeting(ctx, logger, req, start)
	meetLink := meeting.MeetLink

	data := consultationEmail{Booking: req, Start: start, BookingID: bookingID, MeetLink: meetLink}
	out, err := s.adminOutbound(tmplConsultationAdmin,
		fmt.Sprintf("New consultation: %s on %s", req.Name, start.Format("Jan 2, 3:04 PM")), req.Email, data)
	if err != nil {
		return models.Delivery{}, err
	}
	ack, err := s.clientOutbound(tmplConsultationClient, "Your consultation is booked", req.Email, data)
	if err != nil {
		return models.Delivery{}, err
	}

	d, err := s.dispatch(ctx, "consultation", append(out, ack))
	if err != nil {
		s.cancelMeeting(ctx, logger, meeting)
		return d, err
	}

	if meetLink != "" && s.meetLinks != nil {
		if err := s.meetLinks.Save(ctx, bookingID, meetLink); err != nil {
			logger.Warn("Failed to cache meet link", zap.Error(err))
		}
	}
	d.BookingID = bookingID
	d.MeetLink = meetLink

	s.scheduleReminder(ctx, logger, models.ConsultationReminder{
		BookingID: bookingID,
		Name:      req.Name,
		Email:     req.Email,
		Slot:      req.Time,
		StartsAt:  start,
		MeetLink:  meetLink,
	})
	return d, nil
}

func (s *DefaultNotificationService) createMeeting(ctx context.Context, logger *zap.Logger, req models.ConsultationRequest, start time.Time) ScheduledMeeting {
	if s.calendar == nil {
		return ScheduledMeeting{}
	}
	meeting, err := s.calendar.CreateMeeting(ctx, Meeting{
		Summary:     fmt.Sprintf("Consultation with %s", req.Name),
		Description: fmt.Sprintf("Project: %s\nBudget: %s\nPhone: %s\n\n%s", req.ProjectType, req.Budget, req.Phone, req.Message),
		Start:       start,
		Duration:    s.consultationLength,
		Attendees:   []string{req.Email},
	})
	if err != nil {
		logger.Warn("Calendar event creation failed, continuing without meet link", zap.Error(err))
		return ScheduledMeeting{}
	}
	return meeting
}

func (s *DefaultNotificationService) cancelMeeting(ctx context.Context, logger *zap.Logger, m ScheduledMeeting) {
	if s.calendar == nil || m.EventID == "" {
		return
	}
	if err := s.calendar.CancelMeeting(context.WithoutCancel(ctx), m.EventID); err != nil {
		logger.Error("Failed to cancel calendar event of undelivered booking",
			zap.String("eventId", m.EventID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) scheduleReminder(ctx context.Context, logger *zap.Logger, r models.ConsultationReminder) {
	if s.reminders == nil || s.reminderLead <= 0 {
		return
	}
	fireAt := r.StartsAt.Add(-s.reminderLead)
	if !fireAt.After(s.now()) {
		return
	}
	if err := s.reminders.ScheduleReminder(ctx, r, fireAt); err != nil {
		logger.Warn("Failed to schedule reminder", zap.Error(err))
	}
}

// MeetLink returns the cached conference link of a booking.
func (s *DefaultNotificationService) MeetLink(ctx context.Context, bookingID string) (string, error) {
	if s.meetLinks == nil {
		return "", ErrNotFound
	}
	return s.meetLinks.Get(ctx, bookingID)
}

// SendReminder emails a scheduled reminder to the person who booked.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, r models.ConsultationReminder) error {
	if r.Email == "" {
		return errors.New("reminder has no recipient")
	}
	ack, err := s.clientOutbound(tmplConsultationReminder, "Reminder: your consultation is coming up", r.Email, r)
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, ack.email)
}
