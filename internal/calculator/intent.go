package calculator

import (
	"fmt"
	"strings"
)

// IntentKind names one of the keypad actions.
type IntentKind string

const (
	IntentDigit        IntentKind = "digit"
	IntentBackspace    IntentKind = "backspace"
	IntentToggleSign   IntentKind = "toggle_sign"
	IntentDecimalPoint IntentKind = "decimal_point"
	IntentOperator     IntentKind = "operator"
	IntentEquals       IntentKind = "equals"
	IntentClear        IntentKind = "clear"
)

// Intent is a single user action. Digit is used by IntentDigit and Op by
// IntentOperator.
type Intent struct {
	Kind  IntentKind
	Digit byte
	Op    Operation
}

// Validate checks the intent against what the keypad can produce.
func (in Intent) Validate() error {
	switch in.Kind {
	case IntentDigit:
		if in.Digit < '0' || in.Digit > '9' {
			return fmt.Errorf("%w: digit %q", ErrInvalidIntent, in.Digit)
		}
	case IntentOperator:
		if !in.Op.Valid() {
			return fmt.Errorf("%w: operator %s", ErrInvalidIntent, in.Op)
		}
	case IntentBackspace, IntentToggleSign, IntentDecimalPoint, IntentEquals, IntentClear:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidIntent, in.Kind)
	}
	return nil
}

// Apply validates in and dispatches it. Invalid intents leave the session
// untouched and do not notify the view.
func (s *Session) Apply(in Intent) (Outcome, error) {
	if err := in.Validate(); err != nil {
		return OutcomeIgnored, err
	}

	switch in.Kind {
	case IntentDigit:
		return s.Digit(in.Digit), nil
	case IntentBackspace:
		return s.Backspace(), nil
	case IntentToggleSign:
		return s.ToggleSign(), nil
	case IntentDecimalPoint:
		return s.DecimalPoint(), nil
	case IntentOperator:
		return s.Operator(in.Op), nil
	case IntentEquals:
		return s.Equals(), nil
	default:
		return s.Clear(), nil
	}
}

// ParseKey maps a key label to an intent.
//
//	0-9          digit
//	+ - * /      operator, plus every spelling ParseOperation accepts
//	=            equals
//	.            decimal point
//	+/- neg      toggle sign
//	< bs         backspace
//	c clear      clear
func ParseKey(key string) (Intent, error) {
	key = strings.TrimSpace(key)

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return Intent{Kind: IntentDigit, Digit: key[0]}, nil
	}

	switch strings.ToLower(key) {
	case "=":
		return Intent{Kind: IntentEquals}, nil
	case ".":
		return Intent{Kind: IntentDecimalPoint}, nil
	case "+/-", "neg":
		return Intent{Kind: IntentToggleSign}, nil
	case "<", "bs", "backspace":
		return Intent{Kind: IntentBackspace}, nil
	case "c", "clear":
		return Intent{Kind: IntentClear}, nil
	}

	if op, err := ParseOperation(key); err == nil {
		return Intent{Kind: IntentOperator, Op: op}, nil
	}
	return Intent{}, fmt.Errorf("%w: unknown key %q", ErrInvalidIntent, key)
}

// PressKeys parses and applies keys in order, stopping at the first key that
// does not parse.
func (s *Session) PressKeys(keys ...string) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(keys))
	for i, key := range keys {
		in, err := ParseKey(key)
		if err != nil {
			return outcomes, fmt.Errorf("key %d: %w", i, err)
		}
		out, err := s.Apply(in)
		if err != nil {
			return outcomes, fmt.Errorf("key %d: %w", i, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
