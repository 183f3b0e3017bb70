package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/chainparse/lexer"
)

// ASTJSONEncoder writes only the AST of a parse. Tokens left in the AST by
// rules without a reducer are written as token objects.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(ast any) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(ast any) ([]byte, error) {
	return json.MarshalIndent(astToJSON(ast), "", "  ")
}

func astToJSON(v any) any {
	switch v := v.(type) {
	case lexer.Token:
		return tokenToJSON(v)
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = astToJSON(child)
		}
		return out
	default:
		return v
	}
}
