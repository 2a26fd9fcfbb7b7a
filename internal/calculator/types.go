package calculator

import "fmt"

// IntentRequest is the JSON body for POST /calculator/sessions/{id}/intents.
type IntentRequest struct {
	Intent string `json:"intent"`          // "digit", "operator", "equals", ...
	Digit  string `json:"digit,omitempty"` // "0".."9" for intent "digit"
	Op     string `json:"op,omitempty"`    // "+", "-", "*", "/" for intent "operator"
}

// toIntent converts the wire form into a validated Intent.
func (r IntentRequest) toIntent() (Intent, error) {
	in := Intent{Kind: IntentKind(r.Intent)}

	switch in.Kind {
	case IntentDigit:
		if len(r.Digit) != 1 {
			return Intent{}, fmt.Errorf("%w: digit %q", ErrInvalidIntent, r.Digit)
		}
		in.Digit = r.Digit[0]
	case IntentOperator:
		op, err := ParseOperation(r.Op)
		if err != nil {
			return Intent{}, err
		}
		in.Op = op
	}

	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// SessionResponse is the JSON representation of a session's display.
type SessionResponse struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	Tape    string `json:"tape"`
	State   string `json:"state"`
	Pending string `json:"pending"`
}

// IntentResponse is the JSON response for a single applied intent.
type IntentResponse struct {
	SessionResponse
	Outcome string `json:"outcome"`
}

// KeysResponse is the JSON response for a key sequence.
type KeysResponse struct {
	SessionResponse
	Outcomes []string `json:"outcomes"`
}
