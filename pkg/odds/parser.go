package odds

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format identifies how a bettor typed the odds for a leg
type Format string

const (
	FormatFractional Format = "fractional"
	FormatDecimal    Format = "decimal"
)

// evensToken is the spoken form of 1/1
const evensToken = "evens"

var (
	one = decimal.NewFromInt(1)

	// Evens is the decimal multiplier for "evens" (1/1)
	Evens = decimal.NewFromInt(2)

	// DefaultPlaceTerm is the place fraction applied when none (or garbage) is supplied: 1/5
	DefaultPlaceTerm = decimal.NewFromFloat(0.2)
)

// ParseFormat maps a user supplied format name to a Format.
// An empty name means fractional, the bookmaker default.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fractional", "fraction", "frac":
		return FormatFractional, nil
	case "decimal", "dec":
		return FormatDecimal, nil
	default:
		return "", fmt.Errorf("unknown odds format %q", name)
	}
}

// Parse converts odds text in the given format to a decimal multiplier.
// The second return value is false when the text cannot be parsed; callers must treat
// such a leg as not yet evaluable rather than substituting a value.
func Parse(text string, format Format) (decimal.Decimal, bool) {
	if format == FormatDecimal {
		return ParseDecimalOdds(text)
	}
	return ParseOdds(text)
}

// ParseOdds converts fractional odds ("5/2", "evens", "3") into a decimal multiplier.
//
// Examples:
//
//	"5/2"   -> 3.5
//	"evens" -> 2.0
//	"4"     -> 5.0 (4/1)
func ParseOdds(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, evensToken) {
		return Evens, true
	}

	frac, ok := parseFraction(text)
	if !ok {
		return decimal.Zero, false
	}
	return frac.Add(one), true
}

// ParseDecimalOdds parses odds already expressed as a decimal multiplier ("3.5").
// Multipliers below 1.0 cannot occur on a real price and are rejected.
func ParseDecimalOdds(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, evensToken) {
		return Evens, true
	}

	d, err := decimal.NewFromString(text)
	if err != nil || d.LessThan(one) {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePlaceTerm parses an each-way place fraction such as "1/4".
// Unlike odds this is lenient: absent, malformed or out of range terms fall back to
// DefaultPlaceTerm without reporting anything.
func ParsePlaceTerm(text string) decimal.Decimal {
	frac, ok := parseFraction(strings.TrimSpace(text))
	if !ok || frac.GreaterThan(one) {
		return DefaultPlaceTerm
	}
	return frac
}

// parseFraction parses "num/denom" or a bare non-negative number (denominator 1)
func parseFraction(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Zero, false
	}

	numText, denomText, isFraction := strings.Cut(text, "/")
	if !isFraction {
		denomText = "1"
	}

	num, ok := parsePart(numText)
	if !ok {
		return decimal.Zero, false
	}
	denom, ok := parsePart(denomText)
	if !ok || denom.IsZero() {
		return decimal.Zero, false
	}

	return num.Div(denom), true
}

// parsePart parses one side of a fraction; signs and exponents are not odds syntax
func parsePart(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, "+-eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
