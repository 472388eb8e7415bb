package scenario

import "errors"

// HardMaxUnknownLegs is the ceiling for EngineParams.MaxUnknownLegs: 4^12 is already
// close to seventeen million scenario rows.
const HardMaxUnknownLegs = 12

var (
	// ErrUnknownBetType is returned when a wager names a bet type that is not in the table
	ErrUnknownBetType = errors.New("unknown bet type")

	// ErrTooManyUnknownLegs is returned instead of starting an enumeration that would not finish
	ErrTooManyUnknownLegs = errors.New("too many unknown legs")

	// ErrWorkBudgetExceeded is returned when scenarios × combinations would exceed the engine's settlement budget
	ErrWorkBudgetExceeded = errors.New("settlement budget exceeded")

	// ErrNoLegs is returned for a slip without selections
	ErrNoLegs = errors.New("betslip has no legs")
)
