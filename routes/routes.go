package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"webcraft/handlers"
)

// RegisterFormRoutes registers the public form endpoints.
func RegisterFormRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/contact", hb.SubmitContact)
		api.POST("/consultation", hb.BookConsultation)
		api.GET("/consultation/:id", hb.GetConsultation)
		api.POST("/project", hb.SubmitProject)
		api.POST("/newsletter", hb.Subscribe)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// corsConfig allows any origin when origins is empty or contains "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	r.Use(cors.New(corsConfig(allowedOrigins)))

	RegisterFormRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
