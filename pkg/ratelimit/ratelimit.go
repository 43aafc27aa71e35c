package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Store decides whether the caller identified by key may proceed.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
	Name() string
}

// Config describes a limit of Max requests per Window.
type Config struct {
	Max    int
	Window time.Duration
}

func (c Config) normalized() Config {
	if c.Max <= 0 {
		c.Max = 100
	}
	if c.Window <= 0 {
		c.Window = 15 * time.Minute
	}
	return c
}

// MemoryStore keeps one token bucket per key. Idle buckets expire after a
// window.
type MemoryStore struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	limiters *cache.Cache
}

func NewMemoryStore(cfg Config) *MemoryStore {
	cfg = cfg.normalized()
	return &MemoryStore{
		limit:    rate.Limit(float64(cfg.Max) / cfg.Window.Seconds()),
		burst:    cfg.Max,
		ttl:      cfg.Window,
		limiters: cache.New(cfg.Window, 2*cfg.Window),
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := s.limiters.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(s.limit, s.burst)
	}
	s.limiters.Set(key, limiter, s.ttl)

	return limiter.Allow(), nil
}

func (s *MemoryStore) Name() string {
	return "memory"
}
