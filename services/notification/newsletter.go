package notification

import (
	"context"

	"go.uber.org/zap"

	"webcraft/models"
)

// Subscribe stores the address and welcomes it. A repeated signup succeeds
// without sending anything. When no email goes out the address is forgotten
// again so the visitor can retry.
func (s *DefaultNotificationService) Subscribe(ctx context.Context, signup models.NewsletterSignup) (models.Delivery, error) {
	added := false
	if s.subscribers != nil {
		var err error
		added, err = s.subscribers.Add(ctx, signup.Email)
		if err != nil {
			return models.Delivery{}, err
		}
		if !added {
			s.logger.Info("Repeated newsletter signup", zap.String("email", signup.Email))
			return models.Delivery{AlreadySubscribed: true}, nil
		}
	}

	d, err := s.welcome(ctx, signup)
	if err != nil && added {
		if rerr := s.subscribers.Remove(context.WithoutCancel(ctx), signup.Email); rerr != nil {
			s.logger.Warn("Failed to forget undelivered subscriber", zap.String("email", signup.Email), zap.Error(rerr))
		}
	}
	return d, err
}

func (s *DefaultNotificationService) welcome(ctx context.Context, signup models.NewsletterSignup) (models.Delivery, error) {
	welcome, err := s.clientOutbound(tmplNewsletterWelcome, "Welcome to our newsletter", signup.Email, signup)
	if err != nil {
		return models.Delivery{}, err
	}
	out, err := s.adminOutbound(tmplNewsletterAdmin, "New newsletter subscriber", signup.Email, signup)
	if err != nil {
		return models.Delivery{}, err
	}
	return s.dispatch(ctx, "newsletter", append([]outbound{welcome}, out...))
}
