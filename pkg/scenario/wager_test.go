package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// TestUnitStake tests per-bet and combined stake handling
func TestUnitStake(t *testing.T) {
	assertDecimal(t, "2.5", UnitStake(dec("2.5"), models.StakePerBet, 11))
	assertDecimal(t, "2.5", UnitStake(dec("2.5"), "", 11))

	// 10 / 11 = 0.9090..., floored to the penny
	assertDecimal(t, "0.9", UnitStake(dec("10"), models.StakeCombined, 11))
	// 10 / 3 = 3.333...
	assertDecimal(t, "3.33", UnitStake(dec("10"), models.StakeCombined, 3))
	assertDecimal(t, "0", UnitStake(dec("10"), models.StakeCombined, 0))
}

// TestNewWager tests resolving a wager against a leg count
func TestNewWager(t *testing.T) {
	w, err := NewWager(models.Wager{BetType: "yankee", Stake: dec("1"), StakeMode: models.StakePerBet}, 4, true)

	require.NoError(t, err)
	assert.Equal(t, "Yankee", w.BetType.Name)
	assert.Len(t, w.Combinations, 11)
	assert.Equal(t, 22, w.Bets)
	assertDecimal(t, "22", w.Outlay())

	summary := w.Summary()
	assert.Equal(t, "Yankee", summary.BetType)
	assert.Equal(t, 11, summary.Combinations)
	assertDecimal(t, "22", summary.Outlay)
}

// TestNewWager_UnknownBetType tests lookup failure
func TestNewWager_UnknownBetType(t *testing.T) {
	_, err := NewWager(models.Wager{BetType: "flag", Stake: dec("1")}, 4, false)

	assert.ErrorIs(t, err, ErrUnknownBetType)
	assert.Contains(t, err.Error(), `"flag"`)
}
