package models

import "errors"

var (
	// ErrInvalidBetslip marks a request that failed validation
	ErrInvalidBetslip = errors.New("invalid betslip")

	// ErrEvaluationNotFound is returned by caches when no evaluation is stored under an ID
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
