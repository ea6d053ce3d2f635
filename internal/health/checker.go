package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valora-earth/backend/internal/database"
)

// Checker probes the datastore, the session store, and the AI provider.
type Checker struct {
	dbManager   *database.Manager
	providerURL string
	logger      *logrus.Logger
}

func NewChecker(dbManager *database.Manager, providerURL string, logger *logrus.Logger) *Checker {
	return &Checker{
		dbManager:   dbManager,
		providerURL: providerURL,
		logger:      logger,
	}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckPostgreSQL checks PostgreSQL database health
func (h *Checker) CheckPostgreSQL() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingDatabase()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("PostgreSQL health check failed")
	}

	return ServiceHealth{
		Name:         "postgresql",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckRedis checks Redis health
func (h *Checker) CheckRedis() ServiceHealth {
	start := time.Now()
	err := h.dbManager.PingRedis()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Redis health check failed")
	}

	return ServiceHealth{
		Name:         "redis",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckProvider checks that the AI provider endpoint is reachable. A 4xx
// still counts as reachable; only transport errors and 5xx are unhealthy.
func (h *Checker) CheckProvider() ServiceHealth {
	start := time.Now()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(h.providerURL + "/models")

	responseTime := int(time.Since(start).Milliseconds())
	status := "healthy"
	errorMsg := ""

	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
	} else {
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			status = "unhealthy"
			errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}

	if status != "healthy" {
		h.logger.WithField("error", errorMsg).Error("Provider health check failed")
	}

	return ServiceHealth{
		Name:         "openai",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all services
func (h *Checker) CheckAll() OverallHealth {
	services := []ServiceHealth{
		h.CheckPostgreSQL(),
		h.CheckRedis(),
		h.CheckProvider(),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   time.Since(startTime).String(),
	}
}

var startTime = time.Now()
