package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Engine holds the two operands and the last result. Arithmetic is plain
// float64; division by zero is the caller's concern.
type Engine struct {
	first  float64
	second float64
	result float64
}

// NewEngine returns an engine with every value at zero.
func NewEngine() *Engine { return &Engine{} }

// SetFirst stores the left operand.
func (e *Engine) SetFirst(x float64) { e.first = x }

// SetSecond stores the right operand.
func (e *Engine) SetSecond(x float64) { e.second = x }

// First is the left operand.
func (e *Engine) First() float64 { return e.first }

// Result is the value of the last Apply.
func (e *Engine) Result() float64 { return e.result }

// Operands returns first, second and result.
func (e *Engine) Operands() (first, second, result float64) {
	return e.first, e.second, e.result
}

// Reset zeroes both operands and the result.
func (e *Engine) Reset() {
	e.first, e.second, e.result = 0, 0, 0
}

// Apply computes first <op> second into the result. OpNone leaves the
// result untouched.
func (e *Engine) Apply(op Operation) float64 {
	switch op {
	case OpAdd:
		e.result = e.first + e.second
	case OpSub:
		e.result = e.first - e.second
	case OpMul:
		e.result = e.first * e.second
	case OpDiv:
		e.result = e.first / e.second
	}
	return e.result
}

// CanonicalText renders v the way results have always been shown on the
// tape calculator: shortest round-trip digits with at least one fractional
// digit, plain notation for magnitudes in [1e-3, 1e7) and "1.5E-5" style
// notation outside it.
func CanonicalText(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(n)
}
