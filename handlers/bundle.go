package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	SubmitContact    gin.HandlerFunc
	BookConsultation gin.HandlerFunc
	GetConsultation  gin.HandlerFunc
	SubmitProject    gin.HandlerFunc
	Subscribe        gin.HandlerFunc
	Health           gin.HandlerFunc
}
