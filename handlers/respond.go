package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webcraft/models"
	"webcraft/services/notification"
	"webcraft/services/validation"
	"webcraft/utils"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgValidation     = "Please correct the highlighted fields"
	msgDeliveryFailed = "We could not send your request right now. Please try again later."
)

// bindAndValidate decodes the JSON body into T and runs check on it. It
// writes the 400 response itself and reports false when the request is
// unusable.
func bindAndValidate[T any](c *gin.Context, check func(T) validation.Errors) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgInvalidBody, err.Error())
		return req, false
	}
	if errs := check(req); !errs.Empty() {
		utils.JSONValidationError(c, firstMessage(errs), errs)
		return req, false
	}
	return req, true
}

// firstMessage gives the client a single line to show: the message of the
// alphabetically first failing field.
func firstMessage(errs validation.Errors) string {
	var key string
	for k := range errs {
		if key == "" || k < key {
			key = k
		}
	}
	if key == "" {
		return msgValidation
	}
	return errs[key]
}

// respondServiceError maps service failures to status codes.
func respondServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, notification.ErrInvalidSchedule):
		utils.JSONValidationError(c, "Please select a valid date and time", map[string]string{"time": err.Error()})
	case errors.Is(err, notification.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	default:
		logger.Error("Notification failed", zap.String("op", op), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, msgDeliveryFailed, "")
	}
}

// respondDelivered writes the success body. Partial deliveries are still a
// success for the submitter; the operator finds them in the logs.
func respondDelivered(c *gin.Context, logger *zap.Logger, op string, d models.Delivery, message string) {
	if d.Partial {
		logger.Warn("Submission only partially delivered",
			zap.String("op", op),
			zap.Strings("failed", d.Failures),
		)
	}
	resp := models.SinkResponse{Message: message, BookingID: d.BookingID}
	if d.MeetLink != "" {
		link := d.MeetLink
		resp.MeetLink = &link
	}
	c.JSON(http.StatusOK, resp)
}
