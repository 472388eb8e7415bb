package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/cashout-simulator-service/internal/metrics"
	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/combinations"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/scenario"
)

// EvaluationService orchestrates betslip evaluation with caching
type EvaluationService struct {
	evaluator Evaluator
	cache     Cache
	logger    zerolog.Logger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	evaluator Evaluator,
	cache Cache,
	logger zerolog.Logger,
) *EvaluationService {
	return &EvaluationService{
		evaluator: evaluator,
		cache:     cache,
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
	}
}

// Evaluate validates and evaluates a betslip request and caches the result
func (s *EvaluationService) Evaluate(ctx context.Context, req *models.BetslipRequest) (*models.Evaluation, error) {
	start := time.Now()

	if err := ValidateBetslipRequest(req); err != nil {
		metrics.RecordRejected("invalid")
		return nil, err
	}

	slip, err := BuildBetslip(req)
	if err != nil {
		metrics.RecordRejected("invalid")
		return nil, err
	}

	eval, err := s.evaluator.Evaluate(ctx, slip)
	if err != nil {
		metrics.RecordRejected(rejectionReason(err))
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	metrics.RecordEvaluation(string(eval.Status), len(eval.Scenarios), time.Since(start).Seconds())

	// Cache the evaluation
	if err := s.cache.Set(ctx, eval); err != nil {
		metrics.RecordCacheError("set")
		s.logger.Warn().
			Err(err).
			Str("evaluation_id", eval.ID.String()).
			Msg("failed to cache evaluation")
		// Don't fail the request on cache errors
	}

	s.logger.Info().
		Str("evaluation_id", eval.ID.String()).
		Str("status", string(eval.Status)).
		Int("legs", len(slip.Legs)).
		Int("scenarios", len(eval.Scenarios)).
		Str("best_case", eval.BestCaseReturn.String()).
		Str("value_ratio", eval.Cashout.ValueRatio.String()).
		Msg("evaluated betslip")

	return eval, nil
}

// GetEvaluation retrieves a previously computed evaluation from cache
func (s *EvaluationService) GetEvaluation(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	eval, err := s.cache.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrEvaluationNotFound) {
			return nil, err
		}
		metrics.RecordCacheError("get")
		return nil, fmt.Errorf("failed to retrieve evaluation: %w", err)
	}

	s.logger.Debug().
		Str("evaluation_id", id.String()).
		Msg("cache hit for evaluation")

	return eval, nil
}

// BetTypes lists the supported bet types in table order
func (s *EvaluationService) BetTypes() []combinations.BetType {
	return combinations.All()
}

// Ready reports whether the evaluation cache is reachable
func (s *EvaluationService) Ready(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, scenario.ErrUnknownBetType):
		return "unknown_bet_type"
	case errors.Is(err, scenario.ErrTooManyUnknownLegs):
		return "too_many_unknown_legs"
	case errors.Is(err, scenario.ErrWorkBudgetExceeded):
		return "work_budget_exceeded"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, scenario.ErrNoLegs):
		return "no_legs"
	default:
		return "error"
	}
}
