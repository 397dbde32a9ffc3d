package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"relay/internal/models"
)

// HealthHandlers contains health check handlers
type HealthHandlers struct {
	logger zerolog.Logger
}

// NewHealthHandlers creates new health handlers
func NewHealthHandlers(logger zerolog.Logger) *HealthHandlers {
	return &HealthHandlers{logger: logger}
}

// HealthCheck is a liveness probe. It never touches the broker.
func (h *HealthHandlers) HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Debug level to avoid spam from probes
		h.logger.Debug().
			Str("path", c.Request.URL.Path).
			Str("remote_addr", c.ClientIP()).
			Msg("Health check requested")

		c.String(http.StatusOK, models.MessageHealthy)
	}
}
