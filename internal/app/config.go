package app

import (
	"time"

	"github.com/yungbote/skillnest-backend/internal/data/db"
	"github.com/yungbote/skillnest-backend/internal/observability"
	"github.com/yungbote/skillnest-backend/internal/platform/envutil"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string

	HTTP      HTTPConfig
	DB        db.Config
	Stripe    StripeConfig
	Clerk     ClerkConfig
	Auth      AuthConfig
	AIService AIServiceConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Chat      ChatConfig
	CORS      []string
	OTel      observability.OtelConfig
	Metrics   observability.MetricsConfig
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type StripeConfig struct {
	SecretKey        string
	WebhookSecret    string
	WebhookTolerance time.Duration
	SuccessURL       string
	CancelURL        string
	Currency         string
}

type ClerkConfig struct {
	WebhookSecret string
}

type AuthConfig struct {
	// PublicKeyPEM verifies RS256 session tokens from the identity provider.
	PublicKeyPEM string
	// HMACSecret verifies locally minted HS256 tokens.
	HMACSecret string
	Issuer     string
	Leeway     time.Duration
}

type AIServiceConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	ChatTimeout    time.Duration
	HistoryTimeout time.Duration
	HealthTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers         []string
	EnrollmentTopic string
}

type ChatConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

// LoadConfig reads the environment once. Nothing below app reads it again.
func LoadConfig() Config {
	env := envutil.String("APP_ENV", "development")
	service := envutil.String("SERVICE_NAME", "skillnest-backend")
	return Config{
		ServiceName: service,
		Environment: env,
		Version:     envutil.String("APP_VERSION", "dev"),
		HTTP: HTTPConfig{
			Addr:            ":" + envutil.String("PORT", "5000"),
			ReadTimeout:     envutil.Duration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    envutil.Duration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		DB: db.Config{
			Driver:       envutil.String("DB_DRIVER", db.DriverPostgres),
			DSN:          envutil.String("DATABASE_URL", ""),
			Host:         envutil.String("POSTGRES_HOST", "localhost"),
			Port:         envutil.String("POSTGRES_PORT", "5432"),
			User:         envutil.String("POSTGRES_USER", "postgres"),
			Password:     envutil.String("POSTGRES_PASSWORD", ""),
			Name:         envutil.String("POSTGRES_NAME", "skillnest"),
			SSLMode:      envutil.String("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns: envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: envutil.Int("DB_MAX_IDLE_CONNS", 5),
			SlowQuery:    envutil.Duration("DB_SLOW_QUERY", time.Second),
		},
		Stripe: StripeConfig{
			SecretKey:        envutil.String("STRIPE_SECRET_KEY", ""),
			WebhookSecret:    envutil.String("STRIPE_WEBHOOK_SECRET", ""),
			WebhookTolerance: envutil.Duration("STRIPE_WEBHOOK_TOLERANCE", 5*time.Minute),
			SuccessURL:       envutil.String("STRIPE_SUCCESS_URL", ""),
			CancelURL:        envutil.String("STRIPE_CANCEL_URL", ""),
			Currency:         envutil.String("CURRENCY", "usd"),
		},
		Clerk: ClerkConfig{
			WebhookSecret: envutil.String("CLERK_WEBHOOK_SECRET", ""),
		},
		Auth: AuthConfig{
			PublicKeyPEM: envutil.String("CLERK_JWT_KEY", ""),
			HMACSecret:   envutil.String("AUTH_JWT_SECRET", ""),
			Issuer:       envutil.String("AUTH_JWT_ISSUER", ""),
			Leeway:       envutil.Duration("AUTH_JWT_LEEWAY", 5*time.Second),
		},
		AIService: AIServiceConfig{
			BaseURL:        envutil.String("AI_SERVICE_URL", ""),
			APIKey:         envutil.String("AI_SERVICE_API_KEY", ""),
			Timeout:        envutil.Duration("AI_SERVICE_TIMEOUT", 30*time.Second),
			ChatTimeout:    envutil.Duration("AI_CHAT_TIMEOUT", 30*time.Second),
			HistoryTimeout: envutil.Duration("AI_HISTORY_TIMEOUT", 10*time.Second),
			HealthTimeout:  envutil.Duration("AI_HEALTH_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:         envutil.List("KAFKA_BROKERS", nil),
			EnrollmentTopic: envutil.String("KAFKA_ENROLLMENT_TOPIC", "skillnest.enrollments"),
		},
		Chat: ChatConfig{
			RateLimit:  envutil.Int("CHAT_RATE_LIMIT", 30),
			RateWindow: envutil.Duration("CHAT_RATE_WINDOW", time.Minute),
		},
		CORS: envutil.List("CORS_ALLOWED_ORIGINS", nil),
		OTel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: service,
			Environment: env,
			Version:     envutil.String("APP_VERSION", "dev"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 0.1),
		},
		Metrics: observability.MetricsConfig{
			Enabled:        envutil.Bool("METRICS_ENABLED", true),
			ScrapeInterval: envutil.Duration("METRICS_SCRAPE_INTERVAL", 10*time.Second),
		},
	}
}
