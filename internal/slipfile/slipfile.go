// Package slipfile loads betslips written as YAML for the command line tool.
//
// A slip file looks like:
//
//	each_way: true
//	cashout_offer: 30
//	legs:
//	  - odds: 5/2
//	    result: won
//	    place_term: 1/4
//	  - odds: evens
//	wagers:
//	  - bet_type: Double
//	    stake: 10
package slipfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

type document struct {
	ID           string            `yaml:"id"`
	EachWay      bool              `yaml:"each_way"`
	CashoutOffer string            `yaml:"cashout_offer"`
	Legs         []models.LegInput `yaml:"legs"`
	Wagers       []wager           `yaml:"wagers"`
}

type wager struct {
	BetType   string `yaml:"bet_type"`
	Stake     string `yaml:"stake"`
	StakeMode string `yaml:"stake_mode"`
}

// Load reads and parses a slip file
func Load(path string) (*models.BetslipRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slip file: %w", err)
	}
	req, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Parse decodes a YAML slip. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (*models.BetslipRequest, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("slip file is empty")
		}
		return nil, fmt.Errorf("failed to parse slip: %w", err)
	}

	req := &models.BetslipRequest{
		Legs:    doc.Legs,
		Wagers:  make([]models.WagerInput, 0, len(doc.Wagers)),
		EachWay: doc.EachWay,
	}

	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", doc.ID, err)
		}
		req.ID = id
	}

	offer, err := parseAmount(doc.CashoutOffer)
	if err != nil {
		return nil, fmt.Errorf("invalid cashout_offer: %w", err)
	}
	req.CashoutOffer = offer

	for i, w := range doc.Wagers {
		stake, err := parseAmount(w.Stake)
		if err != nil {
			return nil, fmt.Errorf("invalid stake for wager %d: %w", i+1, err)
		}
		req.Wagers = append(req.Wagers, models.WagerInput{
			BetType:   w.BetType,
			Stake:     stake,
			StakeMode: models.StakeMode(strings.ToLower(strings.TrimSpace(w.StakeMode))),
		})
	}

	return req, nil
}

// parseAmount accepts plain numbers; a leading currency sign is tolerated
func parseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimLeft(strings.TrimSpace(text), "£$€")
	if text == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(text)
}
