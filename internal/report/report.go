// Package report renders evaluations as console tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/combinations"
)

// Options controls how an evaluation is rendered
type Options struct {
	// SortByTotal orders scenario rows by total return, highest first
	SortByTotal bool
}

// Render writes a human readable report of eval to w
func Render(w io.Writer, eval *models.Evaluation, opts Options) error {
	fmt.Fprintf(w, "Evaluation %s: %s\n", eval.ID, eval.Status)

	if len(eval.Wagers) > 0 {
		if err := renderWagers(w, eval); err != nil {
			return err
		}
	}

	if !eval.Evaluated() {
		fmt.Fprintf(w, "  %s\n", eval.Message)
		return nil
	}

	fmt.Fprintf(w, "  Known return:     %s\n", money(eval.KnownReturn))
	fmt.Fprintf(w, "  Best case return: %s\n", money(eval.BestCaseReturn))
	if eval.PlaceCaseReturn.Valid {
		fmt.Fprintf(w, "  Place case return: %s\n", money(eval.PlaceCaseReturn.Decimal))
	}
	renderProfitLoss(w, eval.ProfitLoss)

	if err := renderScenarios(w, eval, opts); err != nil {
		return err
	}

	renderCashout(w, eval.Cashout)
	return nil
}

func renderWagers(w io.Writer, eval *models.Evaluation) error {
	table := tablewriter.NewWriter(w)
	table.Header("Bet type", "Combinations", "Bets", "Unit stake", "Outlay")

	for _, wager := range eval.Wagers {
		if err := table.Append(
			wager.BetType,
			fmt.Sprintf("%d", wager.Combinations),
			fmt.Sprintf("%d", wager.Bets),
			money(wager.UnitStake),
			money(wager.Outlay),
		); err != nil {
			return fmt.Errorf("failed to add wager row: %w", err)
		}
	}
	table.Footer("Total", "", fmt.Sprintf("%d", eval.BetCount), "", money(eval.TotalOutlay))

	return table.Render()
}

func renderScenarios(w io.Writer, eval *models.Evaluation, opts Options) error {
	rows := eval.Scenarios
	if opts.SortByTotal {
		rows = eval.SortedScenarios()
	}

	table := tablewriter.NewWriter(w)
	if eval.EachWay {
		table.Header("#", "Scenario", "Win", "Place", "Total", "Beats offer")
	} else {
		table.Header("#", "Scenario", "Win", "Total", "Beats offer")
	}

	for i, row := range rows {
		cells := []any{fmt.Sprintf("%d", i+1), row.Description, money(row.WinReturn)}
		if eval.EachWay {
			cells = append(cells, money(row.PlaceReturn.Decimal))
		}
		cells = append(cells, money(row.TotalReturn), yesNo(row.BeatsCashout))

		if err := table.Append(cells...); err != nil {
			return fmt.Errorf("failed to add scenario row: %w", err)
		}
	}

	return table.Render()
}

func renderProfitLoss(w io.Writer, pl models.ProfitLoss) {
	fmt.Fprintf(w, "  Profit/loss now:  %s\n", signed(pl.Known))
	fmt.Fprintf(w, "  Profit/loss best: %s\n", signed(pl.BestCase))
	if pl.PlaceCase.Valid {
		fmt.Fprintf(w, "  Profit/loss place: %s\n", signed(pl.PlaceCase.Decimal))
	}
}

func renderCashout(w io.Writer, a models.CashoutAnalysis) {
	if a.Offer.IsZero() {
		fmt.Fprintln(w, "  No cashout offer to compare")
		return
	}

	fmt.Fprintf(w, "  Cashout offer:  %s\n", money(a.Offer))
	fmt.Fprintf(w, "  Value ratio:    %s of best case\n", percent(a.ValueRatio))
	fmt.Fprintf(w, "  Beaten by:      %d of %d scenarios\n", a.ScenariosBeating, a.ScenarioCount)

	switch {
	case a.CoversBestCase:
		fmt.Fprintln(w, "  The offer matches or beats every outcome")
	case !a.ExceedsKnownReturn:
		fmt.Fprintln(w, "  The offer is no more than the slip already returns")
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + money(d)
	}
	return money(d)
}

func percent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RenderBetTypes writes the bet type table
func RenderBetTypes(w io.Writer, types []combinations.BetType) error {
	table := tablewriter.NewWriter(w)
	table.Header("Bet type", "Sizes", "Legs", "Bets per slip")

	for _, bt := range types {
		legs := fmt.Sprintf("%d+", bt.MinLegs)
		if bt.ExactLegs {
			legs = fmt.Sprintf("%d", bt.MinLegs)
		}
		if err := table.Append(
			bt.Name,
			joinSizes(bt.Sizes),
			legs,
			fmt.Sprintf("%d", combinations.Count(bt, bt.DefaultLegs)),
		); err != nil {
			return fmt.Errorf("failed to add bet type row: %w", err)
		}
	}

	return table.Render()
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ",")
}
