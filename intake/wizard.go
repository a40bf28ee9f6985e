package intake

import (
	"context"
	"sync"
	"time"

	"webcraft/models"
)

// Overlay is the result dialog drawn over the wizard.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlaySuccess
	OverlayError
)

func (o Overlay) String() string {
	switch o {
	case OverlaySuccess:
		return "success"
	case OverlayError:
		return "error"
	default:
		return "none"
	}
}

// Snapshot is a consistent view of the wizard for rendering.
type Snapshot struct {
	Step       Step
	Overlay    Overlay
	Message    string
	Submitting bool
	Request    models.ProjectRequest
	Booking    models.ConsultationBooking
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithResetDelay sets how long the success overlay stays before the wizard
// starts over. Zero or less resets only on DismissSuccess.
func WithResetDelay(d time.Duration) WizardOption {
	return func(w *Wizard) { w.resetDelay = d }
}

// WithOnChange registers fn to receive a snapshot after every transition.
func WithOnChange(fn func(Snapshot)) WizardOption {
	return func(w *Wizard) { w.onChange = fn }
}

// Wizard drives the five-step project intake. Steps only move forward; the
// record is kept across failures and cleared after a successful submission.
type Wizard struct {
	sink       Sink
	booker     *Booker
	resetDelay time.Duration
	onChange   func(Snapshot)

	mu         sync.Mutex
	step       Step
	booking    models.ConsultationBooking
	booked     *BookingResult
	bookedFor  models.ConsultationBooking
	overlay    Overlay
	message    string
	submitting bool
	closed     bool
	resetTimer *time.Timer
	gen        uint64
}

func NewWizard(sink Sink, opts ...WizardOption) *Wizard {
	w := &Wizard{
		sink:       sink,
		booker:     NewBooker(sink),
		resetDelay: BookingDismissDelay,
		step:       ProjectTypeStep{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Current returns the active step.
func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Request returns the record collected so far, including the last
// attempted consultation details.
func (w *Wizard) Request() models.ProjectRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked().Request
}

// Snapshot returns the full wizard state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	req := Record(w.step)
	if _, ok := w.step.(ConsultationStep); ok {
		req.Consultation = consultationDetails(w.booking, nil)
	}
	return Snapshot{
		Step:       w.step,
		Overlay:    w.overlay,
		Message:    w.message,
		Submitting: w.submitting,
		Request:    req,
		Booking:    w.booking,
	}
}

// Advance applies one of the first four steps. On error the wizard stays
// where it is.
func (w *Wizard) Advance(in StepInput) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.overlay != OverlayNone {
		w.mu.Unlock()
		return ErrOverlayActive
	}
	next, err := Advance(w.step, in)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.step = next
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	return nil
}

// Submit books the consultation and then sends the composite request, one
// after the other. Validation failures leave the wizard untouched; a sink
// failure in either call shows the error overlay and keeps every field.
// If ctx is cancelled or the wizard is closed before the sink answers, the
// answer is dropped. A retry after a failed project call reuses the earlier
// booking as long as the consultation fields are unchanged.
func (w *Wizard) Submit(ctx context.Context, b models.ConsultationBooking) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	step, ok := w.step.(ConsultationStep)
	if !ok {
		w.mu.Unlock()
		return ErrWrongStep
	}
	if w.overlay != OverlayNone {
		w.mu.Unlock()
		return ErrOverlayActive
	}
	if w.submitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}
	if b.ProjectType == "" {
		b.ProjectType = step.ProjectType
	}
	if b.Budget == "" {
		b.Budget = step.Requirements.Budget
	}
	w.booking = b
	w.submitting = true
	var res *BookingResult
	if w.booked != nil && sameBooking(w.bookedFor, b) {
		res = w.booked
	}
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)

	var err error
	if res == nil {
		res, err = w.booker.Book(ctx, b)
		if err != nil && IsValidation(err) {
			w.mu.Lock()
			w.submitting = false
			snap := w.snapshotLocked()
			w.mu.Unlock()
			w.notify(snap)
			return err
		}
		if err == nil {
			w.mu.Lock()
			if !w.closed {
				w.booked, w.bookedFor = res, b
			}
			w.mu.Unlock()
		}
	}
	if err == nil {
		req := Record(step)
		req.Consultation = consultationDetails(b, res.MeetLink)
		_, err = w.sink.SubmitProject(ctx, req)
	}

	w.mu.Lock()
	w.submitting = false
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		w.mu.Unlock()
		return ctxErr
	}
	if err != nil {
		w.overlay = OverlayError
		w.message = UserMessage(err)
	} else {
		w.overlay = OverlaySuccess
		w.message = "Thank you! Your project request has been submitted."
		w.scheduleResetLocked()
	}
	snap = w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snap)
	return err
}

// DismissError is the "Try Again" button: it hides the error overlay and
// keeps the step and every field.
func (w *Wizard) DismissError() {
	w.mu.Lock()
	if w.overlay != OverlayError {
		w.mu.Unlock()
		return
	}
	w.overlay = OverlayNone
	w.message = ""
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// DismissSuccess closes the success overlay and starts over right away.
func (w *Wizard) DismissSuccess() {
	w.mu.Lock()
	if w.overlay != OverlaySuccess {
		w.mu.Unlock()
		return
	}
	w.resetLocked()
	snap := w.snapshotLocked()
	w.mu.Unlock()
	w.notify(snap)
}

// LastMeetLink returns the link from the most recent successful booking.
func (w *Wizard) LastMeetLink() *string { return w.booker.LastMeetLink() }

// Close cancels the reset timer and ignores any in-flight submission.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.gen++
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
}

func (w *Wizard) scheduleResetLocked() {
	if w.resetDelay <= 0 {
		return
	}
	w.gen++
	gen := w.gen
	w.resetTimer = time.AfterFunc(w.resetDelay, func() {
		w.mu.Lock()
		if w.closed || gen != w.gen || w.overlay != OverlaySuccess {
			w.mu.Unlock()
			return
		}
		w.resetLocked()
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.notify(snap)
	})
}

func (w *Wizard) resetLocked() {
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
	w.gen++
	w.step = ProjectTypeStep{}
	w.booking = models.ConsultationBooking{}
	w.booked = nil
	w.bookedFor = models.ConsultationBooking{}
	w.overlay = OverlayNone
	w.message = ""
}

func (w *Wizard) notify(s Snapshot) {
	if w.onChange != nil {
		w.onChange(s)
	}
}

// sameBooking reports whether a and b describe the same consultation.
func sameBooking(a, b models.ConsultationBooking) bool {
	if (a.Date == nil) != (b.Date == nil) {
		return false
	}
	if a.Date != nil && !a.Date.Equal(*b.Date) {
		return false
	}
	a.Date, b.Date = nil, nil
	return a == b
}

func consultationDetails(b models.ConsultationBooking, meetLink *string) models.ConsultationDetails {
	req := b.Request()
	d := models.ConsultationDetails{
		Date:    req.Date,
		Time:    req.Time,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if meetLink != nil {
		d.MeetLink = *meetLink
	}
	return d
}
