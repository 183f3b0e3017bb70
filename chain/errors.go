package chain

import (
	"errors"
	"fmt"

	"github.com/dhamidi/chainparse/lexer"
)

// ErrVisitLimit is wrapped by the ParseError of a parse that exceeded its
// visit ceiling.
var ErrVisitLimit = errors.New("visit limit exceeded")

// GrammarError reports malformed combinator usage. It is raised with panic
// because it is a programming error in the grammar, not an input error.
type GrammarError struct {
	Message string
	Element any
}

func (e *GrammarError) Error() string {
	if e.Element != nil {
		return fmt.Sprintf("grammar: %s: %T %v", e.Message, e.Element, e.Element)
	}
	return "grammar: " + e.Message
}

// Reason classifies a parse failure.
type Reason string

const (
	// ReasonWrong means a token exists that could not extend the best match.
	ReasonWrong Reason = "wrong"
	// ReasonIncomplete means the input ended, or is still being typed, where
	// more was expected.
	ReasonIncomplete Reason = "incomplete"
	// ReasonAborted means the visit ceiling stopped the parse.
	ReasonAborted Reason = "aborted"
)

// ParseError describes why a parse failed and what could have come instead.
type ParseError struct {
	Token       lexer.Token `json:"token"`
	Reason      Reason      `json:"reason"`
	Suggestions []Matching  `json:"suggestions"`

	err error
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonWrong:
		return fmt.Sprintf("unexpected %q at %s", e.Token.Value, e.Token.Position)
	case ReasonIncomplete:
		return fmt.Sprintf("incomplete input at %s", e.Token.Position)
	default:
		return fmt.Sprintf("parse aborted at %s: %v", e.Token.Position, e.err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.err
}
