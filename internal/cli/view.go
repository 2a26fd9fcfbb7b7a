package cli

import (
	"fmt"
	"io"

	"tapecalc/internal/calculator"
)

// terminalView renders the calculator as two lines: tape above, number
// below. It only prints when enabled, so commands can show every step or
// just the final state.
type terminalView struct {
	out     io.Writer
	enabled bool
	number  string
}

func newTerminalView(out io.Writer, enabled bool) *terminalView {
	return &terminalView{out: out, enabled: enabled, number: "0"}
}

func (v *terminalView) SetDisplayedNumberText(text string) { v.number = text }

func (v *terminalView) SetTapeText(text string) {
	if v.enabled {
		printDisplay(v.out, text, v.number)
	}
}

func printDisplay(out io.Writer, tape, number string) {
	fmt.Fprintf(out, "tape:    %s\ndisplay: %s\n", tape, number)
}

// printSession prints the final state of s.
func printSession(out io.Writer, s *calculator.Session) {
	printDisplay(out, s.TapeText(), s.DisplayedText())
}
