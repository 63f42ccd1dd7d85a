package services

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter admits at most a fixed number of hits per key per window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}

// StoreRateLimiter is a fixed-window limiter over a ulule limiter store.
type StoreRateLimiter struct {
	lim    *limiter.Limiter
	window time.Duration
	now    func() time.Time
}

func newStoreRateLimiter(store limiter.Store, limit int, window time.Duration) *StoreRateLimiter {
	rate := limiter.Rate{Period: window, Limit: int64(limit)}
	return &StoreRateLimiter{lim: limiter.New(store, rate), window: window, now: time.Now}
}

// NewMemoryRateLimiter keeps windows in process memory.
func NewMemoryRateLimiter(limit int, window time.Duration) *StoreRateLimiter {
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "chat",
		CleanUpInterval: window,
	})
	return newStoreRateLimiter(store, limit, window)
}

// NewRedisRateLimiter shares windows across instances through Redis.
func NewRedisRateLimiter(rdb *goredis.Client, prefix string, limit int, window time.Duration) (*StoreRateLimiter, error) {
	if prefix == "" {
		prefix = "ratelimit"
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: prefix, MaxRetry: 3})
	if err != nil {
		return nil, fmt.Errorf("init redis rate limit store: %w", err)
	}
	return newStoreRateLimiter(store, limit, window), nil
}

func (s *StoreRateLimiter) Allow(ctx context.Context, key string) (RateDecision, error) {
	lc, err := s.lim.Get(ctx, key)
	if err != nil {
		return RateDecision{}, err
	}
	if lc.Reached {
		return RateDecision{Allowed: false, RetryAfter: s.retryAfter(lc.Reset)}, nil
	}
	return RateDecision{Allowed: true, Remaining: int(lc.Remaining)}, nil
}

// retryAfter converts the store's unix reset time, clamped to one window.
func (s *StoreRateLimiter) retryAfter(reset int64) time.Duration {
	d := time.Unix(reset, 0).Sub(s.now())
	switch {
	case d < 0:
		return 0
	case d > s.window:
		return s.window
	}
	return d
}
