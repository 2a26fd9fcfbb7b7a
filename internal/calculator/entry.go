package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	defaultNumber = "0"
	zeroPoint     = "0."
	minusSign     = "-"
	decimalPoint  = "."
	tokenLen      = 3
)

// ErrTapeInvariant is the panic value raised when the tape does not end in
// a complete operator token.
var ErrTapeInvariant = errors.New("tape does not end with an operator token")

// EntryBuffer owns the text of the number being typed and the tape of the
// current chain. All operations are plain string edits.
type EntryBuffer struct {
	number string
	tape   string
}

// NewEntryBuffer returns a buffer showing "0" with an empty tape.
func NewEntryBuffer() *EntryBuffer {
	return &EntryBuffer{number: defaultNumber}
}

// Number is the displayed number text.
func (b *EntryBuffer) Number() string { return b.number }

// Tape is the chain of committed operands and operator tokens.
func (b *EntryBuffer) Tape() string { return b.tape }

// ResetNumber shows "0".
func (b *EntryBuffer) ResetNumber() { b.number = defaultNumber }

// ResetTape empties the tape.
func (b *EntryBuffer) ResetTape() { b.tape = "" }

// AppendDigit extends the entry with d.
func (b *EntryBuffer) AppendDigit(d byte) { b.number += string(d) }

// ReplaceWithDigit starts a new entry with d.
func (b *EntryBuffer) ReplaceWithDigit(d byte) { b.number = string(d) }

// ShowError replaces the displayed number with a literal message.
func (b *EntryBuffer) ShowError(message string) { b.number = message }

// IsSingleCharacterOrZeroPointForm reports whether one more backspace should
// reset the entry instead of trimming it.
func (b *EntryBuffer) IsSingleCharacterOrZeroPointForm() bool {
	return len(b.number) == 1 || b.number == zeroPoint
}

// DeleteLastCharacter trims one character from the entry.
func (b *EntryBuffer) DeleteLastCharacter() {
	b.number = b.number[:len(b.number)-1]
}

// IsOnlyMinusSign reports whether the entry is exactly "-".
func (b *EntryBuffer) IsOnlyMinusSign() bool { return b.number == minusSign }

// IsNegative reports whether the entry starts with "-".
func (b *EntryBuffer) IsNegative() bool { return strings.HasPrefix(b.number, minusSign) }

// AddMinusSign prefixes the entry with "-".
func (b *EntryBuffer) AddMinusSign() { b.number = minusSign + b.number }

// RemoveMinusSign drops the leading "-".
func (b *EntryBuffer) RemoveMinusSign() { b.number = b.number[1:] }

// HasNoDecimalPoint reports whether the entry has no ".".
func (b *EntryBuffer) HasNoDecimalPoint() bool { return !strings.Contains(b.number, decimalPoint) }

// AppendDecimalPoint extends the entry with ".".
func (b *EntryBuffer) AppendDecimalPoint() { b.number += decimalPoint }

// IsNumeric reports whether the display parses to a finite number.
func (b *EntryBuffer) IsNumeric() bool {
	v, ok := parseNumber(b.number)
	return ok && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// parseNumber parses displayed text. Out-of-range literals overflow to
// ±Inf rather than failing.
func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return v, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return v, true
	}
	return 0, false
}

// IsZeroValue reports whether the current entry is textually zero. Only the
// two spellings reachable from the keypad are recognised.
func (b *EntryBuffer) IsZeroValue() bool {
	return b.number == defaultNumber || b.number == zeroPoint
}

// commitForm normalises the entry at the moment it leaves the editor: "0."
// becomes "0", and so does any text that does not parse (a lone minus
// sign, "-.", the error message).
func (b *EntryBuffer) commitForm() {
	if b.number == zeroPoint {
		b.number = defaultNumber
		return
	}
	if _, ok := parseNumber(b.number); !ok {
		b.number = defaultNumber
	}
}

// AppendOperationToTape commits the displayed number and the operator token
// to the tape.
func (b *EntryBuffer) AppendOperationToTape(op Operation) {
	b.commitForm()
	b.tape += b.number + op.token()
}

// ReplaceLastOperationOnTape swaps the trailing operator token. It panics
// with ErrTapeInvariant when the tape does not end in a token.
func (b *EntryBuffer) ReplaceLastOperationOnTape(op Operation) {
	if !b.endsWithToken() {
		panic(fmt.Errorf("%w: %q", ErrTapeInvariant, b.tape))
	}
	b.tape = b.tape[:len(b.tape)-tokenLen] + op.token()
}

func (b *EntryBuffer) endsWithToken() bool {
	if len(b.tape) < tokenLen {
		return false
	}
	tail := b.tape[len(b.tape)-tokenLen:]
	for _, op := range []Operation{OpAdd, OpSub, OpMul, OpDiv} {
		if tail == op.token() {
			return true
		}
	}
	return false
}

// TapeIsNonEmpty reports whether a chain is in progress.
func (b *EntryBuffer) TapeIsNonEmpty() bool { return b.tape != "" }

// FormatResult shows the canonical result text, dropping exactly one
// trailing ".0".
func (b *EntryBuffer) FormatResult(text string) {
	b.number = FormatResult(text)
}

// FormatResult strips a trailing ".0" from canonical result text. "5.00" and
// "1.0E10" are left as they are.
func FormatResult(text string) string {
	if strings.HasSuffix(text, ".0") {
		return text[:len(text)-2]
	}
	return text
}
