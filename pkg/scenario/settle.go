package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/combinations"
)

var one = decimal.NewFromInt(1)

// Settlement is the payout of one combination under a fixed set of leg results
type Settlement struct {
	WinQualifies   bool
	PlaceQualifies bool
	Win            decimal.Decimal
	Place          decimal.Decimal
}

// Returns is the payout of a whole slip under a fixed set of leg results
type Returns struct {
	Win   decimal.Decimal
	Place decimal.Decimal
	Total decimal.Decimal
}

// SettleCombination settles one combination of legs.
//
// Void legs drop out of both products. The win part pays stake × Π odds when every
// remaining leg won; the place part (each-way only) pays stake × Π (1 + (odds-1) × term)
// when every remaining leg won or placed. Lost or unknown legs disqualify. A combination
// whose legs are all void pays the stake back on each part.
//
// Every leg in the combination must have valid odds.
func SettleCombination(legs []models.Leg, combo combinations.Combination, stake decimal.Decimal, eachWay bool) Settlement {
	return newLegFactors(legs).settleCombination(resultsOf(legs), combo, stake, eachWay)
}

// Settle settles every combination of every wager and sums the payouts.
// The place total only counts towards Total on each-way slips.
func Settle(legs []models.Leg, wagers []Wager, eachWay bool) Returns {
	return newLegFactors(legs).settle(resultsOf(legs), wagers, eachWay)
}

// legFactors holds every leg's win and place multiplier so that repeated settlements
// of the same slip only multiply
type legFactors struct {
	win   []decimal.Decimal
	place []decimal.Decimal
}

func newLegFactors(legs []models.Leg) legFactors {
	f := legFactors{
		win:   make([]decimal.Decimal, len(legs)),
		place: make([]decimal.Decimal, len(legs)),
	}
	for i, leg := range legs {
		if !leg.Odds.Valid {
			continue
		}
		price := leg.Odds.Decimal
		f.win[i] = price
		f.place[i] = one.Add(price.Sub(one).Mul(leg.PlaceMultiplier))
	}
	return f
}

func (f legFactors) settleCombination(results []models.Result, combo combinations.Combination, stake decimal.Decimal, eachWay bool) Settlement {
	winQualifies := true
	placeQualifies := eachWay
	winProduct := one
	placeProduct := one

	for _, idx := range combo {
		switch results[idx] {
		case models.ResultVoid:
			continue
		case models.ResultWon:
		case models.ResultPlaced:
			winQualifies = false
		default:
			winQualifies = false
			placeQualifies = false
		}
		if !winQualifies && !placeQualifies {
			break
		}

		if winQualifies {
			winProduct = winProduct.Mul(f.win[idx])
		}
		if placeQualifies {
			placeProduct = placeProduct.Mul(f.place[idx])
		}
	}

	s := Settlement{
		WinQualifies:   winQualifies,
		PlaceQualifies: placeQualifies,
		Win:            decimal.Zero,
		Place:          decimal.Zero,
	}
	if winQualifies {
		s.Win = stake.Mul(winProduct)
	}
	if placeQualifies {
		s.Place = stake.Mul(placeProduct)
	}
	return s
}

func (f legFactors) settle(results []models.Result, wagers []Wager, eachWay bool) Returns {
	r := Returns{Win: decimal.Zero, Place: decimal.Zero}
	for _, w := range wagers {
		for _, combo := range w.Combinations {
			s := f.settleCombination(results, combo, w.UnitStake, eachWay)
			r.Win = r.Win.Add(s.Win)
			r.Place = r.Place.Add(s.Place)
		}
	}

	r.Total = r.Win
	if eachWay {
		r.Total = r.Total.Add(r.Place)
	}
	return r
}

func resultsOf(legs []models.Leg) []models.Result {
	results := make([]models.Result, len(legs))
	for i, leg := range legs {
		results[i] = leg.Result
	}
	return results
}
