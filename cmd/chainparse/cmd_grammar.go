package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/chainparse/ebnf"
	"github.com/dhamidi/chainparse/grammars"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var name string
	var check bool
	var list bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print a grammar as EBNF",
		Long: `Print a grammar as EBNF.

With --check the EBNF is parsed back and verified instead of printed:
every production must be defined and reachable from the start production.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				for _, n := range grammars.Names() {
					g, _ := grammars.Lookup(n)
					fmt.Fprintf(out, "%s\t%s\n", g.Name, g.Description)
				}
				return nil
			}

			g, err := grammars.Lookup(name)
			if err != nil {
				return err
			}
			exported := ebnf.Export(g.Root, g.Lexer)

			if !check {
				_, err := io.WriteString(out, exported.String())
				return err
			}

			if err := exported.Verify(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			fmt.Fprintf(out, "%s: ok (%d productions, start %s)\n", g.Name, len(exported.Productions), exported.Start)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "grammar", "g", "arith", "grammar to print")
	cmd.Flags().BoolVar(&check, "check", false, "verify the exported EBNF instead of printing it")
	cmd.Flags().BoolVar(&list, "list", false, "list the available grammars")

	return cmd
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	inner := err
	if u := errors.Unwrap(err); u != nil {
		inner = u
	}
	v := reflect.ValueOf(inner)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
