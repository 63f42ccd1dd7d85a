package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	// ping reports database reachability; nil skips the check.
	ping         func(ctx context.Context) error
	aiConfigured bool
}

func NewHealthHandler(ping func(ctx context.Context) error, aiConfigured bool) *HealthHandler {
	return &HealthHandler{ping: ping, aiConfigured: aiConfigured}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/health
func (h *HealthHandler) Summary(c *gin.Context) {
	status, code, db := "healthy", http.StatusOK, "connected"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code, db = "degraded", http.StatusServiceUnavailable, "disconnected"
		}
	}
	ai := "not_configured"
	if h.aiConfigured {
		ai = "configured"
	}
	c.JSON(code, gin.H{
		"status":    status,
		"message":   "LMS API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"database":   db,
			"ai_service": ai,
			"chatbot":    "available",
		},
	})
}
