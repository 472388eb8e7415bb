package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// MemoryCache keeps evaluations in process. Used when Redis is disabled and by the CLI.
type MemoryCache struct {
	store  *gocache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// MemoryCacheConfig holds in-process cache configuration
type MemoryCacheConfig struct {
	TTL time.Duration
}

// NewMemoryCache creates a new in-process cache
func NewMemoryCache(config MemoryCacheConfig, logger zerolog.Logger) *MemoryCache {
	return &MemoryCache{
		store:  gocache.New(config.TTL, config.TTL*2),
		ttl:    config.TTL,
		logger: logger.With().Str("component", "memory_cache").Logger(),
	}
}

// Set stores an evaluation until its TTL lapses
func (c *MemoryCache) Set(_ context.Context, eval *models.Evaluation) error {
	c.store.Set(evaluationKey(eval.ID), eval, gocache.DefaultExpiration)

	c.logger.Debug().
		Str("evaluation_id", eval.ID.String()).
		Dur("ttl", c.ttl).
		Msg("cached evaluation")

	return nil
}

// Get retrieves a stored evaluation. A miss returns models.ErrEvaluationNotFound.
func (c *MemoryCache) Get(_ context.Context, id uuid.UUID) (*models.Evaluation, error) {
	value, found := c.store.Get(evaluationKey(id))
	if !found {
		return nil, models.ErrEvaluationNotFound
	}
	eval, ok := value.(*models.Evaluation)
	if !ok {
		return nil, models.ErrEvaluationNotFound
	}
	return eval, nil
}

// Ping always succeeds
func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}

// Close drops every stored evaluation
func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}
