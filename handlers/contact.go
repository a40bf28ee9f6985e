package handlers

import (
	"github.com/gin-gonic/gin"

	"webcraft/services/notification"
	"webcraft/services/validation"
)

type ContactHandler struct {
	svc notification.NotificationService
}

func NewContactHandler(svc notification.NotificationService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	logger := getLogger(c)
	msg, ok := bindAndValidate(c, validation.Contact)
	if !ok {
		return
	}
	d, err := h.svc.SendContactMessage(c.Request.Context(), msg)
	if err != nil {
		respondServiceError(c, logger, "contact", err)
		return
	}
	respondDelivered(c, logger, "contact", d, "Message sent successfully! We'll get back to you soon.")
}

