package notification

import (
	"context"
	"fmt"

	"webcraft/models"
)

func (s *DefaultNotificationService) SendContactMessage(ctx context.Context, msg models.ContactMessage) (models.Delivery, error) {
	out, err := s.adminOutbound(tmplContactAdmin, fmt.Sprintf("New contact message from %s", msg.Name), msg.Email, msg)
	if err != nil {
		return models.Delivery{}, err
	}
	ack, err := s.clientOutbound(tmplContactClient, "We received your message", msg.Email, msg)
	if err != nil {
		return models.Delivery{}, err
	}
	return s.dispatch(ctx, "contact", append(out, ack))
}
