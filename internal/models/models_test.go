package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseResult tests result spellings from forms and slips
func TestParseResult(t *testing.T) {
	tests := map[string]Result{
		"":          ResultUnknown,
		"Unknown":   ResultUnknown,
		"Win":       ResultWon,
		"won":       ResultWon,
		"Place":     ResultPlaced,
		"PLACED":    ResultPlaced,
		"Lost":      ResultLost,
		"Void / NR": ResultVoid,
		" void ":    ResultVoid,
	}
	for input, want := range tests {
		got, err := ParseResult(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseResult("wonn")
	assert.Error(t, err)
}

// TestResult_JSON tests text marshalling through encoding/json
func TestResult_JSON(t *testing.T) {
	var leg LegInput
	err := json.Unmarshal([]byte(`{"odds":"5/2","result":"Place"}`), &leg)
	require.NoError(t, err)
	assert.Equal(t, ResultPlaced, leg.Result)

	err = json.Unmarshal([]byte(`{"odds":"5/2","result":"maybe"}`), &leg)
	assert.Error(t, err, "typos must not become a silent result")

	out, err := json.Marshal(ResultVoid)
	require.NoError(t, err)
	assert.Equal(t, `"void"`, string(out))

	_, err = json.Marshal(Result(42))
	assert.Error(t, err)
}

// TestResult_Title tests display names
func TestResult_Title(t *testing.T) {
	assert.Equal(t, "Won", ResultWon.Title())
	assert.Equal(t, "Unknown", ResultUnknown.Title())
}

// TestBetslip_MissingAndUnknown tests the leg index helpers
func TestBetslip_MissingAndUnknown(t *testing.T) {
	slip := &Betslip{
		Legs: []Leg{
			{Odds: decimal.NewNullDecimal(decimal.NewFromInt(2)), Result: ResultWon},
			{Result: ResultUnknown},
			{Odds: decimal.NewNullDecimal(decimal.NewFromInt(3)), Result: ResultUnknown},
		},
	}

	assert.Equal(t, []int{2}, slip.MissingOdds())
	assert.Equal(t, []int{1, 2}, slip.UnknownLegs())
}

// TestEvaluation_SortedScenarios tests descending stable ordering without touching the original
func TestEvaluation_SortedScenarios(t *testing.T) {
	eval := &Evaluation{
		Scenarios: []ScenarioRow{
			{Description: "a", TotalReturn: decimal.NewFromInt(5)},
			{Description: "b", TotalReturn: decimal.NewFromInt(70)},
			{Description: "c", TotalReturn: decimal.NewFromInt(5)},
			{Description: "d", TotalReturn: decimal.Zero},
		},
	}

	sorted := eval.SortedScenarios()

	got := make([]string, len(sorted))
	for i, row := range sorted {
		got[i] = row.Description
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, got)
	assert.Equal(t, "a", eval.Scenarios[0].Description)
}
