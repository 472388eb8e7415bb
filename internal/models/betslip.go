package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StakeMode says how a wager's stake relates to its individual bets
type StakeMode string

const (
	// StakePerBet means the stake is placed on every combination (and on each half of an each-way bet)
	StakePerBet StakeMode = "per_bet"
	// StakeCombined means the stake is the total outlay, split evenly across all bets
	StakeCombined StakeMode = "combined"
)

// LegInput is one selection as typed on a form or read off a slip by OCR
type LegInput struct {
	Odds       string `json:"odds" yaml:"odds"`
	OddsFormat string `json:"odds_format,omitempty" yaml:"odds_format"`
	Result     Result `json:"result" yaml:"result"`
	PlaceTerm  string `json:"place_term,omitempty" yaml:"place_term"`
}

// WagerInput is one bet type struck over the slip's legs
type WagerInput struct {
	BetType   string          `json:"bet_type" validate:"required"`
	Stake     decimal.Decimal `json:"stake" validate:"gte=0"`
	StakeMode StakeMode       `json:"stake_mode,omitempty" validate:"omitempty,oneof=per_bet combined"`
}

// BetslipRequest is the inbound shape from forms, the CLI and the OCR ingestion topic
type BetslipRequest struct {
	ID           uuid.UUID       `json:"id,omitempty"`
	Legs         []LegInput      `json:"legs" validate:"required,min=1,max=12,dive"`
	Wagers       []WagerInput    `json:"wagers" validate:"required,min=1,max=12,dive"`
	EachWay      bool            `json:"each_way"`
	CashoutOffer decimal.Decimal `json:"cashout_offer" validate:"gte=0"`
}

// Leg is a parsed selection. Odds is invalid (not Valid) while the odds text cannot be
// parsed; such a leg blocks evaluation of the whole slip.
type Leg struct {
	Label           string              `json:"label"`
	Odds            decimal.NullDecimal `json:"odds"`
	Result          Result              `json:"result"`
	PlaceMultiplier decimal.Decimal     `json:"place_multiplier"`
}

// Wager is a parsed WagerInput
type Wager struct {
	BetType   string          `json:"bet_type"`
	Stake     decimal.Decimal `json:"stake"`
	StakeMode StakeMode       `json:"stake_mode"`
}

// Betslip is the engine's input: everything an evaluation needs, passed explicitly
type Betslip struct {
	ID           uuid.UUID       `json:"id"`
	Legs         []Leg           `json:"legs"`
	Wagers       []Wager         `json:"wagers"`
	EachWay      bool            `json:"each_way"`
	CashoutOffer decimal.Decimal `json:"cashout_offer"`
}

// MissingOdds returns the 1-based numbers of legs whose odds could not be parsed
func (b *Betslip) MissingOdds() []int {
	var missing []int
	for i, leg := range b.Legs {
		if !leg.Odds.Valid {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// UnknownLegs returns the 0-based indices of legs whose result is still unknown
func (b *Betslip) UnknownLegs() []int {
	var unknown []int
	for i, leg := range b.Legs {
		if leg.Result == ResultUnknown {
			unknown = append(unknown, i)
		}
	}
	return unknown
}
