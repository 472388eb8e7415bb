package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EvaluationStatus tells the caller whether a scenario table could be produced
type EvaluationStatus string

const (
	StatusEvaluated EvaluationStatus = "evaluated"
	// StatusNotEvaluable means at least one leg has unparsable odds
	StatusNotEvaluable EvaluationStatus = "not_evaluable"
	// StatusNothingToSettle means no wager produced a single combination for this leg count
	StatusNothingToSettle EvaluationStatus = "nothing_to_settle"
)

// LegOutcome is one unknown leg's assumed result within a scenario
type LegOutcome struct {
	Leg    int    `json:"leg"` // 1-based
	Label  string `json:"label"`
	Result Result `json:"result"`
}

// ScenarioRow is the settled return for one assignment of results to the unknown legs
type ScenarioRow struct {
	Description  string              `json:"description"`
	Outcomes     []LegOutcome        `json:"outcomes"`
	WinReturn    decimal.Decimal     `json:"win_return"`
	PlaceReturn  decimal.NullDecimal `json:"place_return"` // null unless each-way
	TotalReturn  decimal.Decimal     `json:"total_return"`
	BeatsCashout bool                `json:"beats_cashout"`
}

// WagerSummary describes how one wager was struck
type WagerSummary struct {
	BetType      string          `json:"bet_type"`
	Combinations int             `json:"combinations"`
	Bets         int             `json:"bets"`
	UnitStake    decimal.Decimal `json:"unit_stake"`
	Outlay       decimal.Decimal `json:"outlay"`
}

// CashoutAnalysis compares the offer with the simulated returns
type CashoutAnalysis struct {
	Offer    decimal.Decimal `json:"offer"`
	BestCase decimal.Decimal `json:"best_case"`
	// ValueRatio is offer / best case, 0 when the best case pays nothing
	ValueRatio         decimal.Decimal `json:"value_ratio"`
	ScenariosBeating   int             `json:"scenarios_beating"`
	ScenarioCount      int             `json:"scenario_count"`
	ExceedsKnownReturn bool            `json:"exceeds_known_return"`
	CoversBestCase     bool            `json:"covers_best_case"`
}

// ProfitLoss is a return less the slip's total outlay
type ProfitLoss struct {
	Known     decimal.Decimal     `json:"known"`
	BestCase  decimal.Decimal     `json:"best_case"`
	PlaceCase decimal.NullDecimal `json:"place_case"` // null unless each-way
}

// Evaluation is the full output of one engine pass over a betslip
type Evaluation struct {
	ID          uuid.UUID        `json:"id"`
	Status      EvaluationStatus `json:"status"`
	Message     string           `json:"message,omitempty"`
	EachWay     bool             `json:"each_way"`
	MissingOdds []int            `json:"missing_odds,omitempty"`
	UnknownLegs []int            `json:"unknown_legs,omitempty"` // 1-based
	Wagers      []WagerSummary   `json:"wagers,omitempty"`
	BetCount    int              `json:"bet_count"`
	TotalOutlay decimal.Decimal  `json:"total_outlay"`

	KnownReturn     decimal.Decimal     `json:"known_return"`
	BestCaseReturn  decimal.Decimal     `json:"best_case_return"`
	PlaceCaseReturn decimal.NullDecimal `json:"place_case_return"` // null unless each-way
	ProfitLoss      ProfitLoss          `json:"profit_loss"`

	Scenarios []ScenarioRow   `json:"scenarios"`
	Cashout   CashoutAnalysis `json:"cashout"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Evaluated reports whether the evaluation produced a scenario table
func (e *Evaluation) Evaluated() bool {
	return e.Status == StatusEvaluated
}

// SortedScenarios returns the scenario rows ordered by total return, highest first.
// Rows with equal totals keep their enumeration order.
func (e *Evaluation) SortedScenarios() []ScenarioRow {
	rows := make([]ScenarioRow, len(e.Scenarios))
	copy(rows, e.Scenarios)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalReturn.GreaterThan(rows[j].TotalReturn)
	})
	return rows
}

// EngineParams holds the scenario engine's tunables
type EngineParams struct {
	// MaxUnknownLegs bounds the 3^U / 4^U enumeration
	MaxUnknownLegs int
	// MaxSettlements bounds scenario count × combinations across all wagers
	MaxSettlements int
	// Timeout bounds a single evaluation; zero leaves it to the caller's context
	Timeout time.Duration
	// EnumeratePlacedWithoutEachWay keeps "placed" in the outcome domain of win-only slips
	EnumeratePlacedWithoutEachWay bool
}
