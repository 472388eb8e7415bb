package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// Cache is an interface that abstracts evaluation storage
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, eval *models.Evaluation) error
	Get(ctx context.Context, id uuid.UUID) (*models.Evaluation, error)
	Ping(ctx context.Context) error
	Close() error
}
