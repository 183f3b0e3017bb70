package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/grammars"
	"github.com/spf13/cobra"
)

// parserFlags are shared by the commands that run a parser over input.
type parserFlags struct {
	grammar     string
	file        string
	maxVisits   int
	noFirstSets bool
}

func (f *parserFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.grammar, "grammar", "g", "arith", "grammar to use ("+strings.Join(grammars.Names(), ", ")+")")
	cmd.Flags().StringVar(&f.file, "file", "", "read input from a file (- for stdin)")
	cmd.Flags().IntVar(&f.maxVisits, "max-visits", chain.DefaultMaxVisits, "abort a parse after this many node visits")
	cmd.Flags().BoolVar(&f.noFirstSets, "no-first-sets", false, "disable first-set pruning")
}

func (f *parserFlags) parser() (*grammars.Grammar, *chain.Parser, error) {
	g, err := grammars.Lookup(f.grammar)
	if err != nil {
		return nil, nil, err
	}
	opts := []chain.Option{chain.WithMaxVisits(f.maxVisits)}
	if f.noFirstSets {
		opts = append(opts, chain.WithoutFirstSets())
	}
	return g, g.Parser(opts...), nil
}

// input returns the text to parse: the --file contents, the positional
// arguments joined by spaces, or stdin when neither is given.
func (f *parserFlags) input(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case f.file == "-":
		return readAll(cmd.InOrStdin())
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return readAll(cmd.InOrStdin())
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
