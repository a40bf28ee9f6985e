// Package intake holds the client-side core of the agency site: the contact,
// newsletter and booking forms, the five-step project intake wizard and the
// timed status banners they share. Nothing here knows about HTTP; all
// side effects go through a Sink.
package intake

import (
	"context"
	"errors"
	"sort"

	"webcraft/models"
	"webcraft/services/validation"
)

// Sink is the notification service as seen from the forms. client.Client
// is the production implementation.
type Sink interface {
	SendContact(ctx context.Context, m models.ContactMessage) (*models.SinkResponse, error)
	BookConsultation(ctx context.Context, r models.ConsultationRequest) (*models.SinkResponse, error)
	SubmitProject(ctx context.Context, p models.ProjectRequest) (*models.SinkResponse, error)
	Subscribe(ctx context.Context, n models.NewsletterSignup) (*models.SinkResponse, error)
}

// GenericErrorMessage is shown when a failure carries no usable text.
const GenericErrorMessage = "Something went wrong. Please try again later."

var (
	ErrDateRequired     = errors.New(validation.MsgSelectDate)
	ErrInvalidSlot      = errors.New(validation.MsgSelectTime)
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrClosed           = errors.New("form is closed")
	ErrWrongStep        = errors.New("input does not belong to the current step")
	ErrOverlayActive    = errors.New("dismiss the current result first")
)

// IsValidation reports whether err was raised before any sink call.
func IsValidation(err error) bool {
	var ve validation.Errors
	return errors.As(err, &ve) || errors.Is(err, ErrDateRequired) || errors.Is(err, ErrInvalidSlot)
}

// UserMessage turns any error from this package into banner text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve validation.Errors
	if errors.As(err, &ve) && len(ve) > 0 {
		keys := make([]string, 0, len(ve))
		for k := range ve {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return ve[keys[0]]
	}
	if errors.Is(err, ErrDateRequired) || errors.Is(err, ErrInvalidSlot) ||
		errors.Is(err, ErrSubmitInProgress) || errors.Is(err, ErrOverlayActive) {
		return err.Error()
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return GenericErrorMessage
}
