package scenario

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/combinations"
)

// Wager is a bet type resolved against a slip: its combinations and the stake on each
type Wager struct {
	BetType      combinations.BetType
	Combinations []combinations.Combination
	UnitStake    decimal.Decimal
	Bets         int
}

// Outlay is what the wager costs: unit stake × number of bets
func (w Wager) Outlay() decimal.Decimal {
	return w.UnitStake.Mul(decimal.NewFromInt(int64(w.Bets)))
}

// Summary converts the wager to its reporting form
func (w Wager) Summary() models.WagerSummary {
	return models.WagerSummary{
		BetType:      w.BetType.Name,
		Combinations: len(w.Combinations),
		Bets:         w.Bets,
		UnitStake:    w.UnitStake,
		Outlay:       w.Outlay(),
	}
}

// NewWager resolves a wager over legCount legs
func NewWager(in models.Wager, legCount int, eachWay bool) (Wager, error) {
	bt, ok := combinations.Lookup(in.BetType)
	if !ok {
		return Wager{}, fmt.Errorf("%w: %q", ErrUnknownBetType, in.BetType)
	}

	bets := combinations.BetCount(bt, legCount, eachWay)
	return Wager{
		BetType:      bt,
		Combinations: combinations.For(bt, legCount),
		UnitStake:    UnitStake(in.Stake, in.StakeMode, bets),
		Bets:         bets,
	}, nil
}

// UnitStake returns the stake on each individual bet. A combined stake is split evenly
// across the bets and rounded down to the penny, so the actual outlay never exceeds it.
func UnitStake(stake decimal.Decimal, mode models.StakeMode, bets int) decimal.Decimal {
	if mode != models.StakeCombined {
		return stake
	}
	if bets <= 0 {
		return decimal.Zero
	}
	return stake.Div(decimal.NewFromInt(int64(bets))).RoundFloor(2)
}
