package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

const (
	ChatRateLimitMessage    = "Too many messages sent. Please wait a moment before sending another message."
	chatRetryAfterSeconds   = 60
	chatRateLimiterMetricID = "chatbot"
)

// ChatRateLimit limits chat requests per sessionId, or per client IP when the
// body carries none. The body is cached on the context, so downstream
// handlers must read it with ShouldBindBodyWith.
func ChatRateLimit(log *logger.Logger, limiter services.RateLimiter, m *observability.Metrics) gin.HandlerFunc {
	log = log.With("middleware", "ChatRateLimit")
	return func(c *gin.Context) {
		var body struct {
			SessionID string `json:"sessionId"`
		}
		_ = c.ShouldBindBodyWith(&body, binding.JSON)
		key := strings.TrimSpace(body.SessionID)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable; admitting request", "error", err)
			c.Next()
			return
		}
		if !decision.Allowed {
			m.IncRateLimited(chatRateLimiterMetricID)
			log.Info("chat request rate limited", "session_id", key)
			c.Header("Retry-After", strconv.Itoa(chatRetryAfterSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"message":    ChatRateLimitMessage,
				"error":      ChatRateLimitMessage,
				"retryAfter": chatRetryAfterSeconds,
			})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
