package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
)

// LineEncoder writes one suggestion per line as "<kind> <value>".
type LineEncoder struct {
	w      io.Writer
	result *chain.Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(res *chain.Result) error {
	e.result = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, m := range e.result.Suggestions {
		fmt.Fprintf(&sb, "%s\n", m)
	}
	return []byte(sb.String()), nil
}

// TokenLineEncoder writes one token per line as
// "<line>:<column>\t<kind>\t<quoted value>".
type TokenLineEncoder struct {
	w io.Writer
}

func NewTokenLineEncoder(w io.Writer) *TokenLineEncoder {
	return &TokenLineEncoder{w: w}
}

func (e *TokenLineEncoder) Encode(tokens []lexer.Token) error {
	var sb strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&sb, "%s\t%s\t%q\n", tok.Position, tok.Kind, tok.Value)
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}
