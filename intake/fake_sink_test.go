package intake

import (
	"context"
	"sync"

	"webcraft/models"
)

// sinkError mimics client.SinkError without importing the transport.
type sinkError struct {
	status int
	msg    string
}

func (e *sinkError) Error() string       { return e.msg }
func (e *sinkError) UserMessage() string { return e.msg }

type fakeSink struct {
	mu sync.Mutex

	contactCalls    int
	bookCalls       int
	projectCalls    int
	subscribeCalls  int
	lastBooking     models.ConsultationRequest
	lastProject     models.ProjectRequest
	lastContact     models.ContactMessage
	bookFn          func(ctx context.Context, r models.ConsultationRequest) (*models.SinkResponse, error)
	projectFn       func(ctx context.Context, p models.ProjectRequest) (*models.SinkResponse, error)
	contactFn       func(ctx context.Context, m models.ContactMessage) (*models.SinkResponse, error)
	subscribeResult error
}

func (f *fakeSink) SendContact(ctx context.Context, m models.ContactMessage) (*models.SinkResponse, error) {
	f.mu.Lock()
	f.contactCalls++
	f.lastContact = m
	fn := f.contactFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, m)
	}
	return &models.SinkResponse{Message: "sent"}, nil
}

func (f *fakeSink) BookConsultation(ctx context.Context, r models.ConsultationRequest) (*models.SinkResponse, error) {
	f.mu.Lock()
	f.bookCalls++
	f.lastBooking = r
	fn := f.bookFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, r)
	}
	return &models.SinkResponse{Message: "booked"}, nil
}

func (f *fakeSink) SubmitProject(ctx context.Context, p models.ProjectRequest) (*models.SinkResponse, error) {
	f.mu.Lock()
	f.projectCalls++
	f.lastProject = p
	fn := f.projectFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, p)
	}
	return &models.SinkResponse{Message: "received"}, nil
}

func (f *fakeSink) Subscribe(ctx context.Context, n models.NewsletterSignup) (*models.SinkResponse, error) {
	f.mu.Lock()
	f.subscribeCalls++
	err := f.subscribeResult
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &models.SinkResponse{Message: "subscribed"}, nil
}

func (f *fakeSink) counts() (contact, book, project, subscribe int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contactCalls, f.bookCalls, f.projectCalls, f.subscribeCalls
}

func strPtr(s string) *string { return &s }
