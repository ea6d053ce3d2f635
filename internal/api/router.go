// backend/internal/api/router.go
package api

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/valora-earth/backend/internal/api/handlers"
	"github.com/valora-earth/backend/internal/middleware"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Config controls optional routes and middleware.
type Config struct {
	Debug     bool
	RateLimit int // requests per minute per IP on the API group; 0 disables
}

// SetupRouter wires middleware, templates, and all routes.
func SetupRouter(
	cfg Config,
	webHandler *handlers.WebHandler,
	generateHandler *handlers.GenerateHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	router.GET("/", webHandler.Index)
	router.POST("/", webHandler.Index)
	router.GET("/estimate", webHandler.Questionnaire)
	router.POST("/estimate", webHandler.Questionnaire)
	router.GET("/loading-estimate", webHandler.LoadingScreen)
	router.GET("/estimate-results/:inquiry_id", webHandler.Results)

	apiGroup := router.Group("/api")
	if cfg.RateLimit > 0 {
		apiGroup.Use(middleware.NewRateLimiter(cfg.RateLimit).RateLimit())
	}
	apiGroup.POST("/generate-estimate/:inquiry_id", generateHandler.GenerateEstimate)

	if healthHandler != nil {
		router.GET("/health", healthHandler.HandleHealth)
	}

	if cfg.Debug {
		router.GET("/debug/session", webHandler.DebugSession)
	}

	return router
}
