package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

const (
	// DefaultMaxUnknownLegs applies when EngineParams leaves the limit unset
	DefaultMaxUnknownLegs = 10
	// DefaultMaxSettlements applies when EngineParams leaves the settlement budget unset
	DefaultMaxSettlements = 2_000_000

	// scenarios settled between context checks
	cancelCheckInterval = 256
)

// Engine turns a partially settled betslip into a table of possible returns
type Engine struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewEngine creates a new scenario engine
func NewEngine(params models.EngineParams, logger zerolog.Logger) *Engine {
	if params.MaxUnknownLegs <= 0 {
		params.MaxUnknownLegs = DefaultMaxUnknownLegs
	}
	if params.MaxUnknownLegs > HardMaxUnknownLegs {
		params.MaxUnknownLegs = HardMaxUnknownLegs
	}
	if params.MaxSettlements <= 0 {
		params.MaxSettlements = DefaultMaxSettlements
	}

	return &Engine{
		params: params,
		logger: logger.With().Str("component", "scenario_engine").Logger(),
	}
}

// Params returns the effective engine parameters
func (e *Engine) Params() models.EngineParams {
	return e.params
}

// Evaluate settles the slip as it stands, enumerates every outcome of its unknown legs and
// computes the best-case and place-case envelopes.
//
// Slips that cannot be evaluated (unparsable odds, too few legs for every wager) come back
// with a status rather than an error. Errors are reserved for bad input (an unknown bet
// type, more unknown legs or settlements than the engine allows) and for ctx ending
// while scenarios are being settled.
func (e *Engine) Evaluate(ctx context.Context, slip *models.Betslip) (*models.Evaluation, error) {
	if len(slip.Legs) == 0 {
		return nil, ErrNoLegs
	}

	if e.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.params.Timeout)
		defer cancel()
	}

	eval := &models.Evaluation{
		ID:             slip.ID,
		EachWay:        slip.EachWay,
		TotalOutlay:    decimal.Zero,
		KnownReturn:    decimal.Zero,
		BestCaseReturn: decimal.Zero,
		Scenarios:      []models.ScenarioRow{},
		ProfitLoss:     models.ProfitLoss{Known: decimal.Zero, BestCase: decimal.Zero},
		Cashout: models.CashoutAnalysis{
			Offer:      slip.CashoutOffer,
			BestCase:   decimal.Zero,
			ValueRatio: decimal.Zero,
		},
		EvaluatedAt: time.Now().UTC(),
	}
	if eval.ID == uuid.Nil {
		eval.ID = uuid.New()
	}

	wagers, err := e.resolveWagers(slip)
	if err != nil {
		return nil, err
	}
	combos := 0
	for _, w := range wagers {
		eval.Wagers = append(eval.Wagers, w.Summary())
		eval.BetCount += w.Bets
		eval.TotalOutlay = eval.TotalOutlay.Add(w.Outlay())
		combos += len(w.Combinations)
	}

	if missing := slip.MissingOdds(); len(missing) > 0 {
		eval.Status = models.StatusNotEvaluable
		eval.MissingOdds = missing
		eval.Message = fmt.Sprintf("odds missing or unparsable for leg %s", joinInts(missing))
		return eval, nil
	}

	if combos == 0 {
		eval.Status = models.StatusNothingToSettle
		eval.Message = nothingToSettleMessage(wagers, len(slip.Legs))
		return eval, nil
	}

	unknown := slip.UnknownLegs()
	if len(unknown) > e.params.MaxUnknownLegs {
		return nil, fmt.Errorf("%w: %d unknown legs, limit is %d",
			ErrTooManyUnknownLegs, len(unknown), e.params.MaxUnknownLegs)
	}
	domain := e.outcomeDomain(slip.EachWay)
	scenarios := scenarioCount(len(domain), len(unknown))
	if scenarios*combos > e.params.MaxSettlements {
		return nil, fmt.Errorf("%w: %d scenarios × %d combinations, limit is %d settlements",
			ErrWorkBudgetExceeded, scenarios, combos, e.params.MaxSettlements)
	}
	for _, idx := range unknown {
		eval.UnknownLegs = append(eval.UnknownLegs, idx+1)
	}

	factors := newLegFactors(slip.Legs)
	results := resultsOf(slip.Legs)

	known := factors.settle(results, wagers, slip.EachWay)
	eval.KnownReturn = known.Total.Round(2)

	rows, err := e.enumerateScenarios(ctx, slip, wagers, unknown, domain, factors)
	if err != nil {
		return nil, err
	}
	eval.Scenarios = rows

	best := factors.settle(withUnknownsAs(results, unknown, models.ResultWon), wagers, slip.EachWay)
	eval.BestCaseReturn = best.Total.Round(2)
	eval.ProfitLoss = models.ProfitLoss{
		Known:    known.Total.Sub(eval.TotalOutlay).Round(2),
		BestCase: best.Total.Sub(eval.TotalOutlay).Round(2),
	}

	if slip.EachWay {
		placed := factors.settle(withUnknownsAs(results, unknown, models.ResultPlaced), wagers, slip.EachWay)
		eval.PlaceCaseReturn = decimal.NewNullDecimal(placed.Total.Round(2))
		eval.ProfitLoss.PlaceCase = decimal.NewNullDecimal(placed.Total.Sub(eval.TotalOutlay).Round(2))
	}

	eval.Cashout = analyseCashout(slip.CashoutOffer, known.Total, best.Total, rows)
	eval.Status = models.StatusEvaluated

	e.logger.Debug().
		Str("evaluation_id", eval.ID.String()).
		Int("legs", len(slip.Legs)).
		Int("unknown_legs", len(unknown)).
		Int("scenarios", len(rows)).
		Str("known_return", eval.KnownReturn.String()).
		Str("best_case", eval.BestCaseReturn.String()).
		Msg("evaluated betslip")

	return eval, nil
}

// resolveWagers looks up every wager's bet type and strikes it over the slip's legs
func (e *Engine) resolveWagers(slip *models.Betslip) ([]Wager, error) {
	wagers := make([]Wager, 0, len(slip.Wagers))
	for _, in := range slip.Wagers {
		w, err := NewWager(in, len(slip.Legs), slip.EachWay)
		if err != nil {
			return nil, err
		}
		wagers = append(wagers, w)
	}
	return wagers, nil
}

// outcomeDomain lists the results an unknown leg may take. Placed only matters to the
// place half of an each-way bet, so win-only slips leave it out unless configured otherwise.
func (e *Engine) outcomeDomain(eachWay bool) []models.Result {
	if eachWay || e.params.EnumeratePlacedWithoutEachWay {
		return eachWayOutcomes
	}
	return winOnlyOutcomes
}

// enumerateScenarios settles the slip once per assignment of outcomes to the unknown legs.
// It gives up with ctx's error once ctx is done.
func (e *Engine) enumerateScenarios(
	ctx context.Context,
	slip *models.Betslip,
	wagers []Wager,
	unknown []int,
	domain []models.Result,
	factors legFactors,
) ([]models.ScenarioRow, error) {
	total := scenarioCount(len(domain), len(unknown))
	rows := make([]models.ScenarioRow, 0, total)

	// One working copy, overlaid per scenario; slip.Legs is never written
	work := resultsOf(slip.Legs)

	err := enumerate(len(unknown), domain, func(assignment []models.Result) error {
		if len(rows)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("evaluation stopped after %d of %d scenarios: %w", len(rows), total, err)
			}
		}

		outcomes := make([]models.LegOutcome, len(unknown))
		for i, idx := range unknown {
			work[idx] = assignment[i]
			outcomes[i] = models.LegOutcome{
				Leg:    idx + 1,
				Label:  slip.Legs[idx].Label,
				Result: assignment[i],
			}
		}

		r := factors.settle(work, wagers, slip.EachWay)
		row := models.ScenarioRow{
			Description:  describe(outcomes),
			Outcomes:     outcomes,
			WinReturn:    r.Win.Round(2),
			TotalReturn:  r.Total.Round(2),
			BeatsCashout: r.Total.GreaterThan(slip.CashoutOffer),
		}
		if slip.EachWay {
			row.PlaceReturn = decimal.NewNullDecimal(r.Place.Round(2))
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// analyseCashout compares the offer with the unrounded known and best-case returns
func analyseCashout(offer, known, best decimal.Decimal, rows []models.ScenarioRow) models.CashoutAnalysis {
	a := models.CashoutAnalysis{
		Offer:              offer,
		BestCase:           best.Round(2),
		ValueRatio:         ValueRatio(offer, best),
		ScenarioCount:      len(rows),
		ExceedsKnownReturn: offer.GreaterThan(known),
		CoversBestCase:     offer.GreaterThanOrEqual(best),
	}
	for _, row := range rows {
		if row.BeatsCashout {
			a.ScenariosBeating++
		}
	}
	return a
}

// ValueRatio is the share of the best-case return the offer represents, to 2 dp.
// A best case of zero gives a ratio of zero.
func ValueRatio(offer, bestCase decimal.Decimal) decimal.Decimal {
	if bestCase.IsZero() {
		return decimal.Zero
	}
	return offer.Div(bestCase).Round(2)
}

// describe renders outcomes as "Leg 2 (5/2): Won, Leg 3 (evens): Lost"
func describe(outcomes []models.LegOutcome) string {
	if len(outcomes) == 0 {
		return "All results known"
	}
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("Leg %d (%s): %s", o.Leg, o.Label, o.Result.Title())
	}
	return strings.Join(parts, ", ")
}

func nothingToSettleMessage(wagers []Wager, legCount int) string {
	parts := make([]string, len(wagers))
	for i, w := range wagers {
		need := fmt.Sprintf("at least %d", w.BetType.MinLegs)
		if w.BetType.ExactLegs {
			need = fmt.Sprintf("exactly %d", w.BetType.MinLegs)
		}
		parts[i] = fmt.Sprintf("%s needs %s legs", w.BetType.Name, need)
	}
	return fmt.Sprintf("nothing to settle with %d legs: %s", legCount, strings.Join(parts, "; "))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
