package notification

import (
	"context"
	"fmt"

	"webcraft/models"
)

// SubmitProject notifies the agency of a completed intake and confirms it to
// the consultation contact, falling back to the business email.
func (s *DefaultNotificationService) SubmitProject(ctx context.Context, req models.ProjectRequest) (models.Delivery, error) {
	contact := req.Consultation.Email
	if contact == "" {
		contact = req.BusinessInfo.Email
	}

	out, err := s.adminOutbound(tmplProjectAdmin,
		fmt.Sprintf("New %s project: %s", req.ProjectType, req.BusinessInfo.Name), contact, req)
	if err != nil {
		return models.Delivery{}, err
	}
	if contact != "" {
		ack, err := s.clientOutbound(tmplProjectClient, "Your project request", contact, req)
		if err != nil {
			return models.Delivery{}, err
		}
		out = append(out, ack)
	}

	d, err := s.dispatch(ctx, "project", out)
	d.MeetLink = req.Consultation.MeetLink
	return d, err
}
