package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
	"github.com/yungbote/skillnest-backend/internal/services"
)

type Services struct {
	Auth services.AuthService

	PaymentWebhook  services.PaymentWebhookService
	IdentityWebhook services.IdentityWebhookService
	Enrollments     services.EnrollmentPublisher

	Course services.CourseService
	User   services.UserService

	Quiz    services.QuizService
	VideoAI services.VideoAIService
	Chatbot services.ChatbotService

	ChatLimiter services.RateLimiter
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, r Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	authService, err := services.NewAuthService(log, services.AuthConfig{
		PublicKeyPEM: cfg.Auth.PublicKeyPEM,
		HMACSecret:   cfg.Auth.HMACSecret,
		Issuer:       cfg.Auth.Issuer,
		Leeway:       cfg.Auth.Leeway,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}
	if !authService.Configured() {
		log.Warn("No session token key configured; authenticated routes will answer 401")
	}

	var publisher services.EnrollmentPublisher = services.NoopEnrollmentPublisher{}
	if clients.Kafka != nil {
		publisher = services.NewKafkaEnrollmentPublisher(clients.Kafka)
	}

	var sessions services.SessionLookup
	var checkout services.CheckoutProvider
	if clients.Stripe.Configured() {
		sessions = clients.Stripe
		checkout = clients.Stripe
	} else {
		log.Warn("STRIPE_SECRET_KEY not set; checkout is disabled")
	}

	paymentWebhook := services.NewPaymentWebhookService(
		db, log,
		services.PaymentWebhookConfig{Secret: cfg.Stripe.WebhookSecret, Tolerance: cfg.Stripe.WebhookTolerance},
		r.Purchase, r.BillingEvent, r.User, r.Course, r.Enrollment,
		sessions, publisher,
	)

	identityWebhook, err := services.NewIdentityWebhookService(db, log, cfg.Clerk.WebhookSecret, r.User, r.Enrollment)
	if err != nil {
		return Services{}, err
	}

	ai := instrumentAI(clients.AI, metrics)

	var limiter services.RateLimiter
	if clients.Redis != nil {
		limiter, err = services.NewRedisRateLimiter(clients.Redis, "chat", cfg.Chat.RateLimit, cfg.Chat.RateWindow)
		if err != nil {
			return Services{}, err
		}
	} else {
		limiter = services.NewMemoryRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateWindow)
	}

	return Services{
		Auth:            authService,
		PaymentWebhook:  paymentWebhook,
		IdentityWebhook: identityWebhook,
		Enrollments:     publisher,
		Course:          services.NewCourseService(db, log, r.Course, r.Enrollment),
		User:            services.NewUserService(db, log, r.User, r.Course, r.Enrollment, r.Purchase, checkout),
		Quiz:            services.NewQuizService(log, ai),
		VideoAI:         services.NewVideoAIService(log, ai, r.VideoTranscript, r.VideoSummary, r.VideoQA),
		Chatbot:         services.NewChatbotService(log, ai),
		ChatLimiter:     limiter,
	}, nil
}
