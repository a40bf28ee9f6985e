package intake

import (
	"sync"
	"time"
)

// Auto-dismiss delays observed on the site.
const (
	ContactDismissDelay = 3 * time.Second
	BookingDismissDelay = 5 * time.Second
)

// SubmissionStatus is the idle/success/error state of one form.
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusSuccess
	StatusError
)

func (s SubmissionStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// StatusTracker holds a SubmissionStatus and returns it to idle a fixed delay
// after it entered success or error.
type StatusTracker struct {
	delay time.Duration

	mu       sync.Mutex
	status   SubmissionStatus
	message  string
	timer    *time.Timer
	gen      uint64
	stopped  bool
	onChange func(SubmissionStatus, string)
}

// NewStatusTracker returns an idle tracker. A non-positive delay disables
// auto-dismiss.
func NewStatusTracker(delay time.Duration) *StatusTracker {
	return &StatusTracker{delay: delay}
}

// OnChange registers fn to be called after every transition. fn runs
// outside the tracker's lock and may call back into it.
func (t *StatusTracker) OnChange(fn func(SubmissionStatus, string)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Status returns the current status and its message.
func (t *StatusTracker) Status() (SubmissionStatus, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status, t.message
}

func (t *StatusTracker) Succeed(msg string) { t.set(StatusSuccess, msg) }

func (t *StatusTracker) Fail(msg string) { t.set(StatusError, msg) }

// Dismiss returns to idle right away and cancels the pending timer.
func (t *StatusTracker) Dismiss() { t.set(StatusIdle, "") }

// Stop cancels the pending timer; later transitions are ignored.
func (t *StatusTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *StatusTracker) set(s SubmissionStatus, msg string) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.status, t.message = s, msg
	if s != StatusIdle && t.delay > 0 {
		gen := t.gen
		t.timer = time.AfterFunc(t.delay, func() { t.expire(gen) })
	}
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(s, msg)
	}
}

func (t *StatusTracker) expire(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.gen++
	t.status, t.message = StatusIdle, ""
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn(StatusIdle, "")
	}
}
