package app

import (
	"context"

	httpH "github.com/yungbote/skillnest-backend/internal/http/handlers"
	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Webhook *httpH.WebhookHandler

	Course *httpH.CourseHandler
	User   *httpH.UserHandler

	AI      *httpH.AIHandler
	VideoAI *httpH.VideoAIHandler
	Chatbot *httpH.ChatbotHandler
}

func wireHandlers(log *logger.Logger, ping func(ctx context.Context) error, clients Clients, s Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(ping, clients.AI.Configured()),
		Webhook: httpH.NewWebhookHandler(log, s.PaymentWebhook, s.IdentityWebhook, metrics),
		Course:  httpH.NewCourseHandler(log, s.Course),
		User:    httpH.NewUserHandler(log, s.User),
		AI:      httpH.NewAIHandler(log, s.Quiz),
		VideoAI: httpH.NewVideoAIHandler(log, s.VideoAI, clients.AI.BaseURL()),
		Chatbot: httpH.NewChatbotHandler(log, s.Chatbot),
	}
}
