package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

const keyPrefix = "evaluation:"

// RedisCache caches evaluations in Redis so any replica can serve GET by ID
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func evaluationKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Set caches an evaluation under evaluation:{id}
func (c *RedisCache) Set(ctx context.Context, eval *models.Evaluation) error {
	key := evaluationKey(eval.ID)

	data, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Dur("ttl", c.ttl).
		Msg("cached evaluation")

	return nil
}

// Get retrieves a cached evaluation. A miss returns models.ErrEvaluationNotFound.
func (c *RedisCache) Get(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	data, err := c.client.Get(ctx, evaluationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrEvaluationNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var eval models.Evaluation
	if err := json.Unmarshal(data, &eval); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}

	return &eval, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
