package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

const keyPrefix = "clinic-api:ratelimit:"

// NewRedisClient parses url and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore is a fixed window counter shared by every API instance.
type RedisStore struct {
	client redis.Cmdable
	cfg    Config
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable, cfg Config) *RedisStore {
	return &RedisStore{
		client: client,
		cfg:    cfg.normalized(),
		now:    time.Now,
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	window := s.now().UnixNano() / int64(s.cfg.Window)
	redisKey := keyPrefix + key + ":" + strconv.FormatInt(window, 10)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, s.cfg.Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= int64(s.cfg.Max), nil
}

func (s *RedisStore) Name() string {
	return "redis"
}

// FallbackStore consults primary through a circuit breaker and answers from
// fallback while primary is failing.
type FallbackStore struct {
	primary  Store
	fallback Store
	cb       *gobreaker.CircuitBreaker
}

func NewFallbackStore(primary, fallback Store) *FallbackStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ratelimit-" + primary.Name(),
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("rate limit breaker state changed")
		},
	})
	return &FallbackStore{primary: primary, fallback: fallback, cb: cb}
}

func (s *FallbackStore) Allow(ctx context.Context, key string) (bool, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.primary.Allow(ctx, key)
	})
	if err == nil {
		return res.(bool), nil
	}
	if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Warn().Err(err).Str("backend", s.primary.Name()).Msg("rate limit backend failed, using fallback")
	}
	return s.fallback.Allow(ctx, key)
}

// Name reports the backend that would answer the next call.
func (s *FallbackStore) Name() string {
	if s.cb.State() == gobreaker.StateOpen {
		return s.fallback.Name()
	}
	return s.primary.Name()
}
