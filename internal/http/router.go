package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/skillnest-backend/internal/http/handlers"
	httpMW "github.com/yungbote/skillnest-backend/internal/http/middleware"
	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics
	Tracing     bool

	AuthMiddleware *httpMW.AuthMiddleware
	ChatRateLimit  gin.HandlerFunc

	HealthHandler  *httpH.HealthHandler
	WebhookHandler *httpH.WebhookHandler
	CourseHandler  *httpH.CourseHandler
	UserHandler    *httpH.UserHandler
	AIHandler      *httpH.AIHandler
	VideoAIHandler *httpH.VideoAIHandler
	ChatbotHandler *httpH.ChatbotHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	requireAuth := passThrough
	requireEducator := passThrough
	if cfg.AuthMiddleware != nil {
		r.Use(cfg.AuthMiddleware.OptionalAuth())
		requireAuth = cfg.AuthMiddleware.RequireAuth()
		requireEducator = cfg.AuthMiddleware.RequireEducator()
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/api/health", cfg.HealthHandler.Summary)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Provider webhooks (raw body, signature-verified)
	if cfg.WebhookHandler != nil {
		r.POST("/stripe", cfg.WebhookHandler.Stripe)
		r.POST("/clerk", cfg.WebhookHandler.Clerk)
	}

	api := r.Group("/api")

	// Course
	if cfg.CourseHandler != nil {
		course := api.Group("/course")
		course.GET("/all", cfg.CourseHandler.ListCourses)
		course.GET("/:id", cfg.CourseHandler.GetCourse)
		course.DELETE("/:id", requireAuth, requireEducator, cfg.CourseHandler.DeleteCourse)
	}

	// User (Me)
	if cfg.UserHandler != nil {
		user := api.Group("/user", requireAuth)
		user.GET("/data", cfg.UserHandler.GetUserData)
		user.GET("/enrolled-courses", cfg.UserHandler.EnrolledCourses)
		user.POST("/purchase", cfg.UserHandler.PurchaseCourse)
	}

	// Quiz generation
	if cfg.AIHandler != nil {
		api.POST("/ai/generate-quiz", cfg.AIHandler.GenerateQuiz)
		api.GET("/ai/health", cfg.AIHandler.Health)
	}

	// Video AI
	if cfg.VideoAIHandler != nil {
		v := api.Group("/video-ai")
		v.GET("/health", cfg.VideoAIHandler.Health)
		v.GET("/videos", cfg.VideoAIHandler.ListVideos)
		v.POST("/initialize-showcase", cfg.VideoAIHandler.InitializeShowcase)
		v.POST("/transcripts", requireAuth, requireEducator, cfg.VideoAIHandler.UploadTranscript)
		v.POST("/summarize", cfg.VideoAIHandler.Summarize)
		v.POST("/summarize/:videoId", cfg.VideoAIHandler.Summarize)
		v.POST("/ask-question", cfg.VideoAIHandler.AskQuestion)
		v.POST("/ask-question/:videoId", cfg.VideoAIHandler.AskQuestion)
		v.GET("/questions/:videoId", cfg.VideoAIHandler.QuestionHistory)
		v.GET("/summaries/:videoId", cfg.VideoAIHandler.Summaries)
	}

	// Chatbot
	if cfg.ChatbotHandler != nil {
		chat := api.Group("/chatbot")
		limit := cfg.ChatRateLimit
		if limit == nil {
			limit = passThrough
		}
		chat.POST("/chat", limit, cfg.ChatbotHandler.Chat)
		chat.GET("/history/:sessionId", cfg.ChatbotHandler.History)
		chat.DELETE("/conversation/:sessionId", cfg.ChatbotHandler.ClearConversation)
		chat.GET("/health", cfg.ChatbotHandler.Health)
	}

	return r
}

func passThrough(c *gin.Context) { c.Next() }
