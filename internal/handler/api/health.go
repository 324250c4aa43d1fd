package api

import (
	"context"
	"net/http"
	"time"

	"travel-kernel/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	pingers []shared.Pinger
}

func NewHealthHandler(pingers ...shared.Pinger) *HealthHandler {
	return &HealthHandler{pingers: pingers}
}

// @Summary Health check
// @Description Liveness only
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check
// @Description Pings every backing store
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.pingers))
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			checks[p.Name()] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[p.Name()] = "ok"
	}
	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
