package calculator

// View receives the full display texts after every intent. Implementations
// render them verbatim.
type View interface {
	SetDisplayedNumberText(text string)
	SetTapeText(text string)
}

// NopView discards notifications.
type NopView struct{}

func (NopView) SetDisplayedNumberText(string) {}
func (NopView) SetTapeText(string)            {}

// Display is a View that keeps the last texts it was given.
type Display struct {
	Number string
	Tape   string
}

func (d *Display) SetDisplayedNumberText(text string) { d.Number = text }
func (d *Display) SetTapeText(text string)            { d.Tape = text }

// ViewFunc adapts a single callback receiving both texts into a View. The
// callback runs once per notification pair, after the tape text arrives.
type ViewFunc func(number, tape string)

type funcView struct {
	fn     ViewFunc
	number string
}

// AsView wraps fn so it can be passed to NewSession.
func (fn ViewFunc) AsView() View { return &funcView{fn: fn} }

func (v *funcView) SetDisplayedNumberText(text string) { v.number = text }
func (v *funcView) SetTapeText(text string)            { v.fn(v.number, text) }
