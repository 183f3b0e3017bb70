// Package format renders parse results for the command line.
package format

import (
	"encoding"

	"github.com/dhamidi/chainparse/chain"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(res *chain.Result) error
}
