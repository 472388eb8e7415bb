package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	config := RedisCacheConfig{
		Addr: mr.Addr(),
		TTL:  30 * time.Minute,
	}

	return &testRedisCacheSetup{
		cache:     NewRedisCache(config, zerolog.Nop()),
		miniRedis: mr,
		ctx:       context.Background(),
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

// sampleEvaluation is an each-way single with one unknown leg
func sampleEvaluation() *models.Evaluation {
	return &models.Evaluation{
		ID:              uuid.New(),
		Status:          models.StatusEvaluated,
		EachWay:         true,
		UnknownLegs:     []int{1},
		BetCount:        2,
		TotalOutlay:     decimal.NewFromInt(20),
		KnownReturn:     decimal.Zero,
		BestCaseReturn:  decimal.NewFromInt(66),
		PlaceCaseReturn: decimal.NewNullDecimal(decimal.NewFromInt(16)),
		Scenarios: []models.ScenarioRow{
			{
				Description: "Leg 1 (4/1): Won",
				Outcomes:    []models.LegOutcome{{Leg: 1, Label: "4/1", Result: models.ResultWon}},
				WinReturn:   decimal.NewFromInt(50),
				PlaceReturn: decimal.NewNullDecimal(decimal.NewFromInt(16)),
				TotalReturn: decimal.NewFromInt(66),
			},
			{
				Description: "Leg 1 (4/1): Placed",
				Outcomes:    []models.LegOutcome{{Leg: 1, Label: "4/1", Result: models.ResultPlaced}},
				WinReturn:   decimal.Zero,
				PlaceReturn: decimal.NewNullDecimal(decimal.NewFromInt(16)),
				TotalReturn: decimal.NewFromInt(16),
			},
		},
		Cashout: models.CashoutAnalysis{
			Offer:      decimal.NewFromInt(15),
			BestCase:   decimal.NewFromInt(66),
			ValueRatio: decimal.RequireFromString("0.23"),
		},
		EvaluatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// TestNewRedisCache tests cache creation
func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, 30*time.Minute, setup.cache.ttl)
}

// TestRedisCache_Set tests that evaluations are stored under their ID
func TestRedisCache_Set(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	eval := sampleEvaluation()

	err := setup.cache.Set(setup.ctx, eval)

	require.NoError(t, err)
	assert.True(t, setup.miniRedis.Exists("evaluation:"+eval.ID.String()))
	assert.Equal(t, 30*time.Minute, setup.miniRedis.TTL("evaluation:"+eval.ID.String()))
}

// TestRedisCache_Set_ContextCanceled tests set operation with canceled context
func TestRedisCache_Set_ContextCanceled(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := setup.cache.Set(ctx, sampleEvaluation())

	assert.Error(t, err)
}

// TestRedisCache_Get tests that a stored evaluation comes back intact
func TestRedisCache_Get(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	original := sampleEvaluation()
	require.NoError(t, setup.cache.Set(setup.ctx, original))

	got, err := setup.cache.Get(setup.ctx, original.ID)

	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, models.StatusEvaluated, got.Status)
	assert.True(t, original.BestCaseReturn.Equal(got.BestCaseReturn))
	require.True(t, got.PlaceCaseReturn.Valid)
	assert.True(t, decimal.NewFromInt(16).Equal(got.PlaceCaseReturn.Decimal))
	require.Len(t, got.Scenarios, 2)
	assert.Equal(t, models.ResultPlaced, got.Scenarios[1].Outcomes[0].Result)
	assert.True(t, original.EvaluatedAt.Equal(got.EvaluatedAt))
}

// TestRedisCache_Get_NotFound tests retrieval when the evaluation doesn't exist
func TestRedisCache_Get_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	got, err := setup.cache.Get(setup.ctx, uuid.New())

	assert.ErrorIs(t, err, models.ErrEvaluationNotFound)
	assert.Nil(t, got)
}

// TestRedisCache_Get_Expired tests retrieval after the TTL lapses
func TestRedisCache_Get_Expired(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	eval := sampleEvaluation()
	require.NoError(t, setup.cache.Set(setup.ctx, eval))

	setup.miniRedis.FastForward(31 * time.Minute)

	_, err := setup.cache.Get(setup.ctx, eval.ID)
	assert.ErrorIs(t, err, models.ErrEvaluationNotFound)
}

// TestRedisCache_Get_Corrupt tests that undecodable entries are reported
func TestRedisCache_Get_Corrupt(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	id := uuid.New()
	require.NoError(t, setup.miniRedis.Set("evaluation:"+id.String(), "{not json"))

	_, err := setup.cache.Get(setup.ctx, id)

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrEvaluationNotFound)
	assert.Contains(t, err.Error(), "failed to unmarshal evaluation")
}

// TestRedisCache_Ping tests connectivity checks
func TestRedisCache_Ping(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NoError(t, setup.cache.Ping(setup.ctx))

	setup.miniRedis.Close()
	assert.Error(t, setup.cache.Ping(setup.ctx))
}
