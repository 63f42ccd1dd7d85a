package app

import (
	"github.com/gin-gonic/gin"

	httpMW "github.com/yungbote/skillnest-backend/internal/http/middleware"
	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type Middleware struct {
	Auth          *httpMW.AuthMiddleware
	ChatRateLimit gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, s Services, metrics *observability.Metrics) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:          httpMW.NewAuthMiddleware(log, s.Auth),
		ChatRateLimit: httpMW.ChatRateLimit(log, s.ChatLimiter, metrics),
	}
}
