package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/clients/kafka"
	"github.com/yungbote/skillnest-backend/internal/clients/redis"
	"github.com/yungbote/skillnest-backend/internal/clients/stripe"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type Clients struct {
	AI     *aiservice.Client
	Stripe *stripe.Client
	// Redis and Kafka are nil when not configured.
	Redis *goredis.Client
	Kafka *kafka.Producer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	ai := aiservice.New(aiservice.Options{
		BaseURL:        cfg.AIService.BaseURL,
		APIKey:         cfg.AIService.APIKey,
		Timeout:        cfg.AIService.Timeout,
		ChatTimeout:    cfg.AIService.ChatTimeout,
		HistoryTimeout: cfg.AIService.HistoryTimeout,
		HealthTimeout:  cfg.AIService.HealthTimeout,
	})
	if !ai.Configured() {
		log.Warn("AI_SERVICE_URL not set; AI features will answer 503")
	}

	st := stripe.New(stripe.Options{
		SecretKey:  cfg.Stripe.SecretKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
		Currency:   cfg.Stripe.Currency,
	}, log)

	out := Clients{AI: ai, Stripe: st}

	// Redis
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rdb
	}

	// Kafka
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := kafka.NewProducer(kafka.Options{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.EnrollmentTopic})
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init kafka producer: %w", err)
		}
		out.Kafka = p
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Kafka != nil {
		_ = c.Kafka.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
