package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

// Metrics is nil when metrics are disabled; every method is nil-safe.
type Metrics struct {
	apiRequests   *CounterVec
	apiLatency    *HistogramVec
	apiInflight   *GaugeVec
	webhookEvents *CounterVec
	aiRequests    *CounterVec
	aiLatency     *HistogramVec
	rateLimited   *CounterVec
	dbStats       *GaugeVec
	redisUp       *GaugeVec

	scrapeInterval time.Duration
}

type MetricsConfig struct {
	Enabled        bool
	ScrapeInterval time.Duration
}

func NewMetrics(cfg MetricsConfig, log *logger.Logger) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	m := &Metrics{
		apiRequests: NewCounterVec("skn_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"skn_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight:   NewGaugeVec("skn_api_inflight_requests", "In-flight API requests.", nil),
		webhookEvents: NewCounterVec("skn_webhook_events_total", "Webhook deliveries by provider/event type/outcome.", []string{"provider", "event_type", "outcome"}),
		aiRequests:    NewCounterVec("skn_ai_requests_total", "AI proxy calls by feature/result.", []string{"feature", "result"}),
		aiLatency: NewHistogramVec(
			"skn_ai_request_duration_seconds",
			"AI proxy call latency in seconds by feature.",
			[]string{"feature"},
			[]float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		),
		rateLimited:    NewCounterVec("skn_rate_limited_total", "Requests rejected by a rate limiter.", []string{"limiter"}),
		dbStats:        NewGaugeVec("skn_db_stats", "Database connection pool stats.", []string{"metric"}),
		redisUp:        NewGaugeVec("skn_redis_up", "Redis connectivity (1=up, 0=down).", nil),
		scrapeInterval: interval,
	}
	if log != nil {
		log.Info("Observability metrics enabled")
	}
	return m
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflight(delta float64) {
	if m == nil {
		return
	}
	m.apiInflight.Add(delta)
}

func (m *Metrics) IncWebhookEvent(provider, eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.Inc(provider, eventType, outcome)
}

func (m *Metrics) WebhookEventCount(provider, eventType, outcome string) float64 {
	if m == nil {
		return 0
	}
	return m.webhookEvents.Value(provider, eventType, outcome)
}

func (m *Metrics) ObserveAI(feature, result string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aiRequests.Inc(feature, result)
	m.aiLatency.Observe(dur.Seconds(), feature)
}

func (m *Metrics) IncRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.rateLimited.Inc(limiter)
}

func (m *Metrics) RateLimitedCount(limiter string) float64 {
	if m == nil {
		return 0
	}
	return m.rateLimited.Value(limiter)
}

// Handler serves the Prometheus text exposition.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_ = m.WritePrometheus(w)
	})
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.webhookEvents, m.aiRequests, m.aiLatency,
		m.rateLimited, m.dbStats, m.redisUp,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// StartDBCollector samples the connection pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					log.Warn("metrics: db stats unavailable", "error", err)
					continue
				}
				st := sqlDB.Stats()
				m.dbStats.Set(float64(st.OpenConnections), "open_connections")
				m.dbStats.Set(float64(st.InUse), "in_use")
				m.dbStats.Set(float64(st.Idle), "idle")
				m.dbStats.Set(float64(st.WaitCount), "wait_count")
				m.dbStats.Set(st.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

// StartRedisCollector pings rdb on every tick and records whether it answered.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					log.Warn("metrics: redis ping failed", "error", err)
					continue
				}
				m.redisUp.Set(1)
			}
		}
	}()
}
