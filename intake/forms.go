package intake

import (
	"context"
	"sync"
	"time"

	"webcraft/models"
	"webcraft/services/validation"
)

// submitGuard disables the submit control while a request is in flight and
// drops results that arrive after the form was closed.
type submitGuard struct {
	mu         sync.Mutex
	submitting bool
	closed     bool
}

func (g *submitGuard) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	if g.submitting {
		return ErrSubmitInProgress
	}
	g.submitting = true
	return nil
}

// end reports whether the caller may still update form state.
func (g *submitGuard) end(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitting = false
	return !g.closed && ctx.Err() == nil
}

// Submitting reports whether a request is in flight.
func (g *submitGuard) Submitting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitting
}

func (g *submitGuard) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// ContactForm is the single-step contact form.
type ContactForm struct {
	submitGuard
	sink   Sink
	Status *StatusTracker
}

func NewContactForm(sink Sink) *ContactForm {
	return &ContactForm{sink: sink, Status: NewStatusTracker(ContactDismissDelay)}
}

// Submit validates m and sends it. Field errors come back as
// validation.Errors and no request is made.
func (f *ContactForm) Submit(ctx context.Context, m models.ContactMessage) error {
	if errs := validation.Contact(m); !errs.Empty() {
		return errs
	}
	if err := f.begin(); err != nil {
		return err
	}
	resp, err := f.sink.SendContact(ctx, m)
	if !f.end(ctx) {
		return firstErr(ctx.Err(), ErrClosed)
	}
	if err != nil {
		f.Status.Fail(UserMessage(err))
		return err
	}
	f.Status.Succeed(successMessage(resp, "Thank you! We'll get back to you soon."))
	return nil
}

// Close stops the banner timer and ignores any in-flight result.
func (f *ContactForm) Close() {
	f.close()
	f.Status.Stop()
}

// NewsletterForm is the footer signup form.
type NewsletterForm struct {
	submitGuard
	sink   Sink
	Status *StatusTracker
}

func NewNewsletterForm(sink Sink) *NewsletterForm {
	return &NewsletterForm{sink: sink, Status: NewStatusTracker(ContactDismissDelay)}
}

func (f *NewsletterForm) Submit(ctx context.Context, n models.NewsletterSignup) error {
	if errs := validation.Newsletter(n); !errs.Empty() {
		return errs
	}
	if err := f.begin(); err != nil {
		return err
	}
	resp, err := f.sink.Subscribe(ctx, n)
	if !f.end(ctx) {
		return firstErr(ctx.Err(), ErrClosed)
	}
	if err != nil {
		f.Status.Fail(UserMessage(err))
		return err
	}
	f.Status.Succeed(successMessage(resp, "Thanks for subscribing!"))
	return nil
}

func (f *NewsletterForm) Close() {
	f.close()
	f.Status.Stop()
}

// BookingForm is the standalone consultation booking form. When ResetDelay
// is positive the record is cleared that long after a successful booking.
type BookingForm struct {
	submitGuard
	booker     *Booker
	Status     *StatusTracker
	ResetDelay time.Duration

	recMu  sync.Mutex
	record models.ConsultationBooking
	timer  *time.Timer
}

func NewBookingForm(sink Sink) *BookingForm {
	return &BookingForm{
		booker:     NewBooker(sink),
		Status:     NewStatusTracker(BookingDismissDelay),
		ResetDelay: BookingDismissDelay,
	}
}

// Record returns the current form contents.
func (f *BookingForm) Record() models.ConsultationBooking {
	f.recMu.Lock()
	defer f.recMu.Unlock()
	return f.record
}

// Booker exposes the underlying operation, e.g. for LastMeetLink.
func (f *BookingForm) Booker() *Booker { return f.booker }

// Submit stores b as the form record and books it. On failure the record is
// kept so the user can correct it and try again.
func (f *BookingForm) Submit(ctx context.Context, b models.ConsultationBooking) (*BookingResult, error) {
	f.recMu.Lock()
	f.record = b
	f.recMu.Unlock()

	if err := f.begin(); err != nil {
		return nil, err
	}
	res, err := f.booker.Book(ctx, b)
	if !f.end(ctx) {
		return nil, firstErr(ctx.Err(), ErrClosed)
	}
	if err != nil {
		f.Status.Fail(UserMessage(err))
		return nil, err
	}

	f.Status.Succeed(successMessage(&models.SinkResponse{Message: res.Message}, "Your consultation is booked."))
	if f.ResetDelay > 0 {
		f.recMu.Lock()
		if f.timer != nil {
			f.timer.Stop()
		}
		f.timer = time.AfterFunc(f.ResetDelay, func() {
			f.recMu.Lock()
			f.record = models.ConsultationBooking{}
			f.recMu.Unlock()
		})
		f.recMu.Unlock()
	}
	return res, nil
}

func (f *BookingForm) Close() {
	f.close()
	f.Status.Stop()
	f.recMu.Lock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.recMu.Unlock()
}

func successMessage(resp *models.SinkResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
