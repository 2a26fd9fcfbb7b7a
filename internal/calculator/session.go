package calculator

import "fmt"

// Outcome describes the transition an intent caused.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeEdited
	OutcomeOperatorReplaced
	OutcomeOperatorQueued
	OutcomeChainStep
	OutcomeResult
	OutcomeDivisionByZero
	OutcomeCleared
)

var outcomeNames = [...]string{
	OutcomeIgnored:          "ignored",
	OutcomeEdited:           "edited",
	OutcomeOperatorReplaced: "operator_replaced",
	OutcomeOperatorQueued:   "operator_queued",
	OutcomeChainStep:        "chain_step",
	OutcomeResult:           "result",
	OutcomeDivisionByZero:   "division_by_zero",
	OutcomeCleared:          "cleared",
}

// Err returns ErrDivisionByZero for OutcomeDivisionByZero and nil for every
// other outcome. A division by zero is shown on the display, so Apply does
// not report it as an error.
func (o Outcome) Err() error {
	if o == OutcomeDivisionByZero {
		return ErrDivisionByZero
	}
	return nil
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	Display string `json:"display"`
	Tape    string `json:"tape"`
	State   string `json:"state"`
	Pending string `json:"pending"`
}

// Session is one running calculator. It owns the entry state and the
// pending operation and drives the entry buffer and engine through the
// keypad state machine. A Session is not safe for concurrent use.
type Session struct {
	state   EntryState
	pending Operation
	buf     *EntryBuffer
	eng     *Engine
	view    View
}

// NewSession returns a session in its initial state. A nil view discards
// notifications.
func NewSession(view View) *Session {
	if view == nil {
		view = NopView{}
	}
	return &Session{
		buf:  NewEntryBuffer(),
		eng:  NewEngine(),
		view: view,
	}
}

// State reports whether the user has typed since the last reset.
func (s *Session) State() EntryState { return s.state }

// Pending is the operation waiting for its second operand.
func (s *Session) Pending() Operation { return s.pending }

// Buffer exposes the entry buffer for inspection.
func (s *Session) Buffer() *EntryBuffer { return s.buf }

// Engine exposes the calculation engine for inspection.
func (s *Session) Engine() *Engine { return s.eng }

// DisplayedText is the number text currently shown.
func (s *Session) DisplayedText() string { return s.buf.Number() }

// TapeText is the chain typed so far.
func (s *Session) TapeText() string { return s.buf.Tape() }

// Snapshot copies the state a transport needs to render the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Display: s.buf.Number(),
		Tape:    s.buf.Tape(),
		State:   s.state.String(),
		Pending: s.pending.String(),
	}
}

func (s *Session) notify() {
	s.view.SetDisplayedNumberText(s.buf.Number())
	s.view.SetTapeText(s.buf.Tape())
}

// Digit handles a digit key. d must be '0'..'9'; Apply validates it.
func (s *Session) Digit(d byte) Outcome {
	defer s.notify()

	if s.state == StateChanged {
		s.buf.AppendDigit(d)
		return OutcomeEdited
	}
	s.buf.ReplaceWithDigit(d)
	s.state = StateChanged
	return OutcomeEdited
}

// Backspace trims the entry, resetting it to "0" once nothing meaningful is left.
func (s *Session) Backspace() Outcome {
	defer s.notify()

	if s.state != StateChanged {
		return OutcomeIgnored
	}
	if s.buf.IsSingleCharacterOrZeroPointForm() {
		s.buf.ResetNumber()
		s.state = StateDefault
		return OutcomeEdited
	}
	s.buf.DeleteLastCharacter()
	return OutcomeEdited
}

// ToggleSign flips the sign of the entry being typed.
func (s *Session) ToggleSign() Outcome {
	defer s.notify()

	if s.state != StateChanged {
		return OutcomeIgnored
	}
	switch {
	case s.buf.IsOnlyMinusSign():
		s.buf.ResetNumber()
		s.state = StateDefault
	case s.buf.IsNegative():
		s.buf.RemoveMinusSign()
	default:
		s.buf.AddMinusSign()
	}
	return OutcomeEdited
}

// DecimalPoint appends "." unless the entry already has one.
func (s *Session) DecimalPoint() Outcome {
	defer s.notify()

	// A result that cannot be extended (error text, Infinity, NaN) gives
	// way to a fresh "0.".
	if s.state == StateDefault && !s.buf.IsNumeric() {
		s.buf.ResetNumber()
	}
	if !s.buf.HasNoDecimalPoint() {
		return OutcomeIgnored
	}
	s.buf.AppendDecimalPoint()
	s.state = StateChanged
	return OutcomeEdited
}

// Operator handles one of the four operator keys. Anything else is ignored.
func (s *Session) Operator(op Operation) Outcome {
	if !op.Valid() {
		return OutcomeIgnored
	}
	defer s.notify()

	// Operator pressed again before any digit: swap it on the tape.
	if s.state == StateDefault && s.buf.TapeIsNonEmpty() {
		s.buf.ReplaceLastOperationOnTape(op)
		s.pending = op
		return OutcomeOperatorReplaced
	}

	switch {
	case s.pending == OpNone:
		s.eng.SetFirst(s.commitEntry())
		s.pending = op
		s.nextNumber(op)
		return OutcomeOperatorQueued
	case s.dividesByZero():
		s.divisionByZero()
		return OutcomeDivisionByZero
	default:
		s.resolve(op)
		return OutcomeChainStep
	}
}

// Equals resolves the pending operation and ends the chain.
func (s *Session) Equals() Outcome {
	defer s.notify()

	if s.pending == OpNone {
		s.resetChain()
		return OutcomeResult
	}

	if s.state == StateDefault {
		// No second operand typed: the first operand is the answer.
		s.buf.FormatResult(CanonicalText(s.eng.First()))
		s.resetChain()
		return OutcomeResult
	}

	if s.dividesByZero() {
		s.divisionByZero()
		return OutcomeDivisionByZero
	}
	s.resolve(OpNone)
	return OutcomeResult
}

// Clear ends the chain and resets the display to "0".
func (s *Session) Clear() Outcome {
	defer s.notify()

	s.resetChain()
	s.buf.ResetNumber()
	return OutcomeCleared
}

// resolve consumes the entry as the second operand and applies the pending
// operation. With a valid next operation the chain continues; with OpNone
// the result is shown and the chain ends.
func (s *Session) resolve(next Operation) {
	s.eng.SetSecond(s.commitEntry())
	result := s.eng.Apply(s.pending)

	if next.Valid() {
		s.eng.SetFirst(result)
		s.pending = next
		s.nextNumber(next)
		return
	}

	s.buf.FormatResult(CanonicalText(result))
	s.resetChain()
}

// nextNumber writes the entry and op to the tape and clears the display for
// the next operand.
func (s *Session) nextNumber(op Operation) {
	s.buf.AppendOperationToTape(op)
	s.buf.ResetNumber()
	s.state = StateDefault
}

// commitEntry normalises the entry and parses it. commitForm leaves only
// parseable text behind; anything else is a broken invariant.
func (s *Session) commitEntry() float64 {
	s.buf.commitForm()
	v, ok := parseNumber(s.buf.Number())
	if !ok {
		panic(fmt.Sprintf("calculator: unparseable entry %q", s.buf.Number()))
	}
	return v
}

// dividesByZero reports whether resolving now would divide by a zero entry.
// The check runs on the committed text, so a lone "-" counts as "0".
func (s *Session) dividesByZero() bool {
	if s.pending != OpDiv {
		return false
	}
	s.buf.commitForm()
	return s.buf.IsZeroValue()
}

func (s *Session) divisionByZero() {
	s.resetChain()
	s.buf.ShowError(DivisionByZeroMessage)
}

// resetChain drops operands, tape and pending operation but keeps the
// displayed number.
func (s *Session) resetChain() {
	s.eng.Reset()
	s.buf.ResetTape()
	s.state = StateDefault
	s.pending = OpNone
}
