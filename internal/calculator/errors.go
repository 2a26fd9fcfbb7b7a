package calculator

import "errors"

// DivisionByZeroMessage replaces the displayed number when a division by a
// zero entry is resolved.
const DivisionByZeroMessage = "Error: Division by zero"

var (
	// ErrDivisionByZero marks the OutcomeDivisionByZero transition.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidIntent is returned for intents the keypad cannot produce.
	ErrInvalidIntent = errors.New("invalid intent")
)
