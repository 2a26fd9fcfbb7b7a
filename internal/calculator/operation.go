package calculator

import (
	"fmt"
	"strings"
)

// Operation is the arithmetic operation waiting for its second operand.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// String returns the enum name used in snapshots and metric attributes.
func (op Operation) String() string {
	switch op {
	case OpNone:
		return "NONE"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Symbol returns the single-character key label of the operation.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return ""
	}
}

// token is the tape form of the operation: the symbol surrounded by single spaces.
func (op Operation) token() string {
	if s := op.Symbol(); s != "" {
		return " " + s + " "
	}
	return ""
}

// Valid reports whether op is one of the four arithmetic operations.
func (op Operation) Valid() bool {
	return op >= OpAdd && op <= OpDiv
}

// ParseOperation accepts a key symbol ("+", "x") or an operation name
// ("ADD", "divide"), ignoring case and surrounding space. It is the one
// operator vocabulary shared by intents and key labels.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "-", "sub", "subtract":
		return OpSub, nil
	case "*", "x", "mul", "multiply":
		return OpMul, nil
	case "/", "div", "divide":
		return OpDiv, nil
	default:
		return OpNone, fmt.Errorf("%w: unknown operation %q", ErrInvalidIntent, s)
	}
}

// EntryState tracks whether the user has typed since the last reset.
type EntryState int

const (
	// StateDefault: showing 0, a prior result, or an error.
	StateDefault EntryState = iota
	// StateChanged: at least one character typed since the last reset.
	StateChanged
)

func (s EntryState) String() string {
	if s == StateChanged {
		return "CHANGED"
	}
	return "DEFAULT"
}
