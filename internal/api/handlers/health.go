// backend/internal/api/handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/health"
	"github.com/valora-earth/backend/internal/models"
	"github.com/valora-earth/backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.Checker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.Checker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// HandleHealth reports overall service health.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll()

	services := make(map[string]string, len(overall.Services))
	for _, service := range overall.Services {
		services[service.Name] = service.Status
	}

	code := http.StatusOK
	if overall.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, models.HealthResponse{
		Status:    overall.Status,
		Service:   utils.ServiceName,
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	})
}
