package app

import (
	"github.com/gin-gonic/gin"

	httpapi "github.com/yungbote/skillnest-backend/internal/http"
	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring router...")
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		CORSOrigins:    cfg.CORS,
		Metrics:        metrics,
		Tracing:        cfg.OTel.Enabled,
		AuthMiddleware: mw.Auth,
		ChatRateLimit:  mw.ChatRateLimit,
		HealthHandler:  h.Health,
		WebhookHandler: h.Webhook,
		CourseHandler:  h.Course,
		UserHandler:    h.User,
		AIHandler:      h.AI,
		VideoAIHandler: h.VideoAI,
		ChatbotHandler: h.Chatbot,
	})
}
