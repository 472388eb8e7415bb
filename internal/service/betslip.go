package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/odds"
)

// BuildBetslip parses a request into the engine's input. Unparsable odds do not fail the
// build: the leg keeps an invalid price and the engine reports the slip as not evaluable.
// Place terms only apply to each-way slips; win-only legs carry a zero multiplier.
func BuildBetslip(req *models.BetslipRequest) (*models.Betslip, error) {
	slip := &models.Betslip{
		ID:           req.ID,
		Legs:         make([]models.Leg, 0, len(req.Legs)),
		Wagers:       make([]models.Wager, 0, len(req.Wagers)),
		EachWay:      req.EachWay,
		CashoutOffer: req.CashoutOffer,
	}

	for i, in := range req.Legs {
		format, err := odds.ParseFormat(in.OddsFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: leg %d: %v", models.ErrInvalidBetslip, i+1, err)
		}

		leg := models.Leg{
			Label:           strings.TrimSpace(in.Odds),
			Result:          in.Result,
			PlaceMultiplier: decimal.Zero,
		}
		if price, ok := odds.Parse(in.Odds, format); ok {
			leg.Odds = decimal.NewNullDecimal(price)
		}
		if req.EachWay {
			leg.PlaceMultiplier = odds.ParsePlaceTerm(in.PlaceTerm)
		}
		slip.Legs = append(slip.Legs, leg)
	}

	for _, in := range req.Wagers {
		mode := in.StakeMode
		if mode == "" {
			mode = models.StakePerBet
		}
		slip.Wagers = append(slip.Wagers, models.Wager{
			BetType:   strings.TrimSpace(in.BetType),
			Stake:     in.Stake,
			StakeMode: mode,
		})
	}

	return slip, nil
}
