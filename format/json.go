package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
)

// JSONEncoder writes a parse result as an indented JSON document.
type JSONEncoder struct {
	w      io.Writer
	result *chain.Result
	tokens bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WithTokens includes the token list in the output.
func (e *JSONEncoder) WithTokens() *JSONEncoder {
	e.tokens = true
	return e
}

func (e *JSONEncoder) Encode(res *chain.Result) error {
	e.result = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildResultData()
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonResult struct {
	Success     bool           `json:"success"`
	AST         any            `json:"ast"`
	Error       *jsonError     `json:"error,omitempty"`
	Suggestions []jsonMatching `json:"suggestions,omitempty"`
	Tokens      []jsonToken    `json:"tokens,omitempty"`
	Visits      int            `json:"visits"`
}

type jsonError struct {
	Reason      string         `json:"reason"`
	Message     string         `json:"message"`
	Token       jsonToken      `json:"token"`
	Suggestions []jsonMatching `json:"suggestions,omitempty"`
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonMatching struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (e *JSONEncoder) buildResultData() jsonResult {
	r := e.result
	data := jsonResult{
		Success:     r.Success,
		AST:         astToJSON(r.AST),
		Suggestions: matchingsToJSON(r.Suggestions),
		Visits:      r.Visits,
	}

	if r.Error != nil {
		data.Error = &jsonError{
			Reason:      string(r.Error.Reason),
			Message:     r.Error.Error(),
			Token:       tokenToJSON(r.Error.Token),
			Suggestions: matchingsToJSON(r.Error.Suggestions),
		}
	}

	if e.tokens {
		data.Tokens = make([]jsonToken, len(r.Tokens))
		for i, tok := range r.Tokens {
			data.Tokens[i] = tokenToJSON(tok)
		}
	}

	return data
}

func tokenToJSON(tok lexer.Token) jsonToken {
	return jsonToken{
		Kind:   tok.Kind,
		Value:  tok.Value,
		Start:  tok.Span.Start,
		End:    tok.Span.End,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}

func matchingsToJSON(ms []chain.Matching) []jsonMatching {
	if len(ms) == 0 {
		return nil
	}
	out := make([]jsonMatching, len(ms))
	for i, m := range ms {
		out[i] = jsonMatching{Kind: string(m.Kind), Value: m.Value}
	}
	return out
}
