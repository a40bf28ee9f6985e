package models

import "time"

// SinkResponse is the JSON body returned by every notification endpoint.
type SinkResponse struct {
	Message   string  `json:"message"`
	MeetLink  *string `json:"meetLink,omitempty"`
	BookingID string  `json:"bookingId,omitempty"`
}

// Email is one outbound message as handed to a mailer.
type Email struct {
	From    string
	To      []string
	BCC     []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Delivery reports what the notification service managed to do for one
// submission. Partial is set when some, but not all, emails went out.
type Delivery struct {
	BookingID         string
	MeetLink          string
	Partial           bool
	Failures          []string
	AlreadySubscribed bool
}

// ConsultationReminder is the payload of a scheduled reminder task.
type ConsultationReminder struct {
	BookingID string    `json:"bookingId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Slot      string    `json:"slot"`
	StartsAt  time.Time `json:"startsAt"`
	MeetLink  string    `json:"meetLink,omitempty"`
}
