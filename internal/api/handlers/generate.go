// backend/internal/api/handlers/generate.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/models"
	"github.com/valora-earth/backend/internal/services"
	"github.com/valora-earth/backend/internal/session"
	"gorm.io/gorm"
)

// GenerateHandler exposes the AI estimate generation endpoint.
type GenerateHandler struct {
	estimateService *services.EstimateService
	sessions        session.Store
	logger          *logrus.Logger
}

func NewGenerateHandler(
	estimateService *services.EstimateService,
	sessions session.Store,
	logger *logrus.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		estimateService: estimateService,
		sessions:        sessions,
		logger:          logger,
	}
}

// GenerateEstimate triggers the full pipeline for one inquiry: prompt,
// provider call, validation, and persistence of estimate plus audit log.
func (h *GenerateHandler) GenerateEstimate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("inquiry_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.GenerateEstimateResponse{
			Success: false,
			Error:   "Property inquiry not found",
		})
		return
	}

	estimate, err := h.estimateService.GenerateForInquiry(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.GenerateEstimateResponse{
				Success: false,
				Error:   "Property inquiry not found",
			})
			return
		}

		h.logger.WithError(err).WithField("inquiry_id", id).Error("AI estimate generation failed")
		c.JSON(http.StatusInternalServerError, models.GenerateEstimateResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	// The questionnaire state has served its purpose once the estimate exists.
	sessionID := ensureSessionID(c)
	if err := h.sessions.Clear(c.Request.Context(), sessionID); err != nil {
		h.logger.WithError(err).Warn("Failed to clear session state")
	}

	h.logger.WithFields(logrus.Fields{
		"inquiry_id":  id,
		"estimate_id": estimate.ID,
	}).Info("Estimate generation completed")

	c.JSON(http.StatusOK, models.GenerateEstimateResponse{
		Success:  true,
		Estimate: models.NewEstimatePayload(estimate),
	})
}
