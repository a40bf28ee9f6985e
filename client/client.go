// Package client talks to the notification endpoints over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"webcraft/models"
)

// GenericErrorMessage is shown when the server gives no usable message.
const GenericErrorMessage = "Something went wrong. Please try again later."

// Endpoint paths, relative to Config.BaseURL.
const (
	ContactPath      = "/api/contact"
	ConsultationPath = "/api/consultation"
	ProjectPath      = "/api/project"
	NewsletterPath   = "/api/newsletter"
)

// Config is injected once at start-up.
type Config struct {
	BaseURL string
	// Timeout of zero keeps the http.Client default (no timeout).
	Timeout    time.Duration
	HTTPClient *http.Client
}

// SinkError is returned for every failed call. Status is zero when the
// request never got an HTTP response.
type SinkError struct {
	Status  int
	Message string
	Err     error
}

func (e *SinkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("notification sink unreachable: %s", e.Message)
	}
	return fmt.Sprintf("notification sink returned status %d: %s", e.Status, e.Message)
}

func (e *SinkError) Unwrap() error { return e.Err }

// Message extracts a user-facing message from any error returned by Client.
func Message(err error) string {
	var se *SinkError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return GenericErrorMessage
}

// Client handles communication with the notification endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("client: base URL is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{baseURL: base, httpClient: hc}, nil
}

// SendContact posts a contact message.
func (c *Client) SendContact(ctx context.Context, m models.ContactMessage) (*models.SinkResponse, error) {
	return c.post(ctx, ContactPath, m)
}

// BookConsultation posts a consultation booking.
func (c *Client) BookConsultation(ctx context.Context, r models.ConsultationRequest) (*models.SinkResponse, error) {
	return c.post(ctx, ConsultationPath, r)
}

// SubmitProject posts the composite intake record.
func (c *Client) SubmitProject(ctx context.Context, p models.ProjectRequest) (*models.SinkResponse, error) {
	return c.post(ctx, ProjectPath, p)
}

// Subscribe posts a newsletter signup.
func (c *Client) Subscribe(ctx context.Context, n models.NewsletterSignup) (*models.SinkResponse, error) {
	return c.post(ctx, NewsletterPath, n)
}

// post sends exactly one request and never retries.
func (c *Client) post(ctx context.Context, path string, payload any) (*models.SinkResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SinkError{Message: GenericErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SinkError{Status: resp.StatusCode, Message: GenericErrorMessage, Err: err}
	}

	var out models.SinkResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := GenericErrorMessage
		if decodeErr == nil && strings.TrimSpace(out.Message) != "" {
			msg = out.Message
		}
		return nil, &SinkError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &SinkError{Status: resp.StatusCode, Message: GenericErrorMessage, Err: decodeErr}
	}
	if out.MeetLink != nil && strings.TrimSpace(*out.MeetLink) == "" {
		out.MeetLink = nil
	}
	return &out, nil
}

// UserMessage is the text a form should show for this failure.
func (e *SinkError) UserMessage() string {
	if e.Message == "" {
		return GenericErrorMessage
	}
	return e.Message
}
