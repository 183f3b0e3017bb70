package main

import (
	"fmt"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var flags parserFlags
	var cursor int
	var withTokens bool

	cmd := &cobra.Command{
		Use:   "parse [input...]",
		Short: "Parse input and print the result as JSON",
		Long: `Parse input with a grammar and print the result as JSON.

With --cursor the result also carries the suggestions for that byte offset.
The command fails when the input does not parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(cmd, args)
			if err != nil {
				return err
			}
			_, p, err := flags.parser()
			if err != nil {
				return err
			}

			res, err := p.Parse(input, cursor)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}

			enc := format.NewJSONEncoder(cmd.OutOrStdout())
			if withTokens {
				enc = enc.WithTokens()
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if !res.Success {
				return fmt.Errorf("parse failed: %w", res.Error)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&cursor, "cursor", chain.NoCursor, "byte offset to compute suggestions for")
	cmd.Flags().BoolVar(&withTokens, "tokens", false, "include the token stream in the output")

	return cmd
}
