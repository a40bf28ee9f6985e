package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webcraft/services/notification"
	"webcraft/services/validation"
)

type ConsultationHandler struct {
	svc notification.NotificationService
}

func NewConsultationHandler(svc notification.NotificationService) *ConsultationHandler {
	return &ConsultationHandler{svc: svc}
}

// Book handles POST /api/consultation.
func (h *ConsultationHandler) Book(c *gin.Context) {
	logger := getLogger(c)
	req, ok := bindAndValidate(c, validation.Consultation)
	if !ok {
		return
	}
	d, err := h.svc.BookConsultation(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, "consultation", err)
		return
	}
	respondDelivered(c, logger, "consultation", d, "Consultation booked successfully!")
}

// Get handles GET /api/consultation/:id and returns the cached meet link.
func (h *ConsultationHandler) Get(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")
	link, err := h.svc.MeetLink(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, logger, "consultation.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": id, "meetLink": link})
}
