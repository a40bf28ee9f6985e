package handlers

import (
	"github.com/gin-gonic/gin"

	"webcraft/services/notification"
	"webcraft/services/validation"
)

type ProjectHandler struct {
	svc notification.NotificationService
}

func NewProjectHandler(svc notification.NotificationService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Submit handles POST /api/project, the final step of the intake wizard.
func (h *ProjectHandler) Submit(c *gin.Context) {
	logger := getLogger(c)
	req, ok := bindAndValidate(c, validation.Project)
	if !ok {
		return
	}
	d, err := h.svc.SubmitProject(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, "project", err)
		return
	}
	respondDelivered(c, logger, "project", d, "Project request submitted successfully!")
}
