package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/core/logger"
)

const (
	healthStatusOK          = "ok"
	healthStatusDegraded    = "degraded"
	healthStatusUnavailable = "unavailable"

	healthCheckTimeout = 2 * time.Second
)

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"mongodb:ok,redis:ok,rabbitmq:ok"`
}

type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers}
}

// Health godoc
// @Summary     Health check
// @Description Checks MongoDB, Redis and RabbitMQ
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := healthStatusOK
	services := make(map[string]string, len(h.checkers))

	for _, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			logger.Warn(ctx, "health: dependency check failed", map[string]any{
				"service": checker.Name,
				"error":   err.Error(),
			})
			services[checker.Name] = healthStatusUnavailable
			status = healthStatusDegraded
		} else {
			services[checker.Name] = healthStatusOK
		}
	}

	code := http.StatusOK
	if status != healthStatusOK {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:   status,
		Services: services,
	})
}
