package models

import (
	"fmt"
	"strings"
)

// Result is the settled (or not yet settled) outcome of a single leg
type Result uint8

const (
	ResultUnknown Result = iota
	ResultWon
	ResultPlaced
	ResultLost
	ResultVoid
)

var resultNames = map[Result]string{
	ResultUnknown: "unknown",
	ResultWon:     "won",
	ResultPlaced:  "placed",
	ResultLost:    "lost",
	ResultVoid:    "void",
}

// resultAliases covers the spellings bookmaker slips and the entry forms use
var resultAliases = map[string]Result{
	"":           ResultUnknown,
	"unknown":    ResultUnknown,
	"pending":    ResultUnknown,
	"won":        ResultWon,
	"win":        ResultWon,
	"placed":     ResultPlaced,
	"place":      ResultPlaced,
	"lost":       ResultLost,
	"lose":       ResultLost,
	"void":       ResultVoid,
	"void / nr":  ResultVoid,
	"void/nr":    ResultVoid,
	"nr":         ResultVoid,
	"non-runner": ResultVoid,
}

// ParseResult maps free text to a Result. Unrecognised text is an error so a typo can
// never silently become a losing leg.
func ParseResult(s string) (Result, error) {
	r, ok := resultAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return ResultUnknown, fmt.Errorf("unknown leg result %q", s)
	}
	return r, nil
}

// String returns the canonical lowercase name
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", uint8(r))
}

// Title returns the display name used in scenario descriptions
func (r Result) Title() string {
	name := r.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// MarshalText implements encoding.TextMarshaler
func (r Result) MarshalText() ([]byte, error) {
	if _, ok := resultNames[r]; !ok {
		return nil, fmt.Errorf("invalid leg result %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Result) UnmarshalText(text []byte) error {
	parsed, err := ParseResult(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
