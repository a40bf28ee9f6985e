package handlers

import (
	"github.com/gin-gonic/gin"

	"webcraft/services/notification"
	"webcraft/services/validation"
)

type NewsletterHandler struct {
	svc notification.NotificationService
}

func NewNewsletterHandler(svc notification.NotificationService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

// Subscribe handles POST /api/newsletter. Signing up twice is not an error.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	logger := getLogger(c)
	signup, ok := bindAndValidate(c, validation.Newsletter)
	if !ok {
		return
	}
	d, err := h.svc.Subscribe(c.Request.Context(), signup)
	if err != nil {
		respondServiceError(c, logger, "newsletter", err)
		return
	}
	message := "Thanks for subscribing!"
	if d.AlreadySubscribed {
		message = "You're already subscribed. Thanks for sticking with us!"
	}
	respondDelivered(c, logger, "newsletter", d, message)
}
