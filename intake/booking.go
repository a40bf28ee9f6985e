package intake

import (
	"context"
	"strings"
	"sync"

	"webcraft/models"
	"webcraft/services/validation"
)

// MeetLinkPlaceholder is shown when a booking came back without a link.
const MeetLinkPlaceholder = "Meeting link will be sent separately"

// BookingResult is what a successful booking returns.
type BookingResult struct {
	Message   string
	BookingID string
	MeetLink  *string
}

// MeetLinkOrPlaceholder returns the link, or the placeholder text when absent.
func MeetLinkOrPlaceholder(link *string) string {
	if link == nil || strings.TrimSpace(*link) == "" {
		return MeetLinkPlaceholder
	}
	return *link
}

// Booker runs the consultation booking operation. It remembers the last
// meeting link it received for the lifetime of the value.
type Booker struct {
	sink Sink

	mu       sync.Mutex
	lastLink *string
}

func NewBooker(sink Sink) *Booker {
	return &Booker{sink: sink}
}

// Book validates the booking and, if it passes, makes exactly one call to
// the sink. A missing date fails with ErrDateRequired before anything else.
func (b *Booker) Book(ctx context.Context, booking models.ConsultationBooking) (*BookingResult, error) {
	if booking.Date == nil {
		return nil, ErrDateRequired
	}
	if !models.IsTimeSlot(booking.Time) {
		return nil, ErrInvalidSlot
	}
	if errs := validation.Booking(booking); !errs.Empty() {
		return nil, errs
	}

	resp, err := b.sink.BookConsultation(ctx, booking.Request())
	if err != nil {
		return nil, err
	}

	res := &BookingResult{Message: resp.Message, BookingID: resp.BookingID}
	if resp.MeetLink != nil && strings.TrimSpace(*resp.MeetLink) != "" {
		link := *resp.MeetLink
		res.MeetLink = &link

		b.mu.Lock()
		b.lastLink = &link
		b.mu.Unlock()
	}
	return res, nil
}

// LastMeetLink returns the most recent link received, if any.
func (b *Booker) LastMeetLink() *string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastLink == nil {
		return nil
	}
	link := *b.lastLink
	return &link
}
