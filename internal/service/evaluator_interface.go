package service

import (
	"context"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// Evaluator is an interface that abstracts the scenario engine
// This allows for easier testing and mocking
type Evaluator interface {
	Evaluate(ctx context.Context, slip *models.Betslip) (*models.Evaluation, error)
}

// BetslipEvaluator takes raw requests through validation, evaluation and caching.
// Transports (Kafka, CLI) depend on this rather than on EvaluationService.
type BetslipEvaluator interface {
	Evaluate(ctx context.Context, req *models.BetslipRequest) (*models.Evaluation, error)
}
