package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GabrielBaezJ/travel-brain/internal/database"
	"github.com/GabrielBaezJ/travel-brain/internal/redis"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	mongo *database.MongoDB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when
// the session store is not configured (token auth mode).
func NewHealthHandler(mongo *database.MongoDB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.mongo.HealthCheck(c.Request.Context()); err != nil {
		checks["mongodb"] = err.Error()
		healthy = false
	} else {
		checks["mongodb"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}
