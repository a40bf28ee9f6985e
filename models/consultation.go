package models

import "time"

// TimeSlots is the catalog of bookable slot labels. Labels are passed
// verbatim end to end and only parsed by the calendar integration.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// SlotLayout is the time.Parse layout of a slot label.
const SlotLayout = "03:04 PM"

// IsTimeSlot reports whether label is in the slot catalog.
func IsTimeSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// ConsultationBooking is the form record held by the booking form and by the
// last wizard step. Date is nil until the user picks one (or clears the picker).
type ConsultationBooking struct {
	Name        string     `json:"name" yaml:"name"`
	Email       string     `json:"email" yaml:"email"`
	Phone       string     `json:"phone" yaml:"phone"`
	Date        *time.Time `json:"date" yaml:"date"`
	Time        string     `json:"time" yaml:"time"`
	ProjectType string     `json:"projectType" yaml:"projectType"`
	Budget      string     `json:"budget" yaml:"budget"`
	Message     string     `json:"message" yaml:"message"`
}

// ConsultationRequest is the wire form of a booking: the date is an ISO-8601
// timestamp and the time is a slot label.
type ConsultationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

// Request converts the form record to its wire form. The picked day is sent
// as UTC midnight of that calendar date whatever zone the picker used. The
// caller must have checked that Date is set.
func (b ConsultationBooking) Request() ConsultationRequest {
	req := ConsultationRequest{
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Time:        b.Time,
		ProjectType: b.ProjectType,
		Budget:      b.Budget,
		Message:     b.Message,
	}
	if b.Date != nil {
		y, m, d := b.Date.Date()
		req.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}
	return req
}
