package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

func chatRouter(limiter services.RateLimiter, m *observability.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/chatbot/chat", ChatRateLimit(logger.Nop(), limiter, m), func(c *gin.Context) {
		var req struct {
			Message   string `json:"message"`
			SessionID string `json:"sessionId"`
		}
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"echo": req.Message})
	})
	return r
}

func postChat(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChatRateLimitThirtyFirstRequest(t *testing.T) {
	m := observability.NewMetrics(observability.MetricsConfig{Enabled: true}, logger.Nop())
	r := chatRouter(services.NewMemoryRateLimiter(30, time.Minute), m)

	for i := 0; i < 30; i++ {
		rec := postChat(r, `{"message":"hi","sessionId":"s-1"}`)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		require.Contains(t, rec.Body.String(), `"echo":"hi"`)
	}

	rec := postChat(r, `{"message":"hi","sessionId":"s-1"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, ChatRateLimitMessage, body["message"])
	require.EqualValues(t, 60, body["retryAfter"])
	require.EqualValues(t, 1, m.RateLimitedCount(chatRateLimiterMetricID))

	// Other sessions keep their own budget.
	rec = postChat(r, `{"message":"hi","sessionId":"s-2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChatRateLimitFallsBackToClientIP(t *testing.T) {
	r := chatRouter(services.NewMemoryRateLimiter(1, time.Minute), nil)
	require.Equal(t, http.StatusOK, postChat(r, `{"message":"hi"}`).Code)
	require.Equal(t, http.StatusTooManyRequests, postChat(r, `{"message":"again"}`).Code)
}
