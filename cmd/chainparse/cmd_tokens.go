package main

import (
	"github.com/dhamidi/chainparse/format"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "tokens [input...]",
		Short: "Tokenize input with the grammar's lexer and print the tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(cmd, args)
			if err != nil {
				return err
			}
			g, _, err := flags.parser()
			if err != nil {
				return err
			}

			tokens, err := g.Lexer.Tokenize(input)
			if err != nil {
				return err
			}
			return format.NewTokenLineEncoder(cmd.OutOrStdout()).Encode(tokens)
		},
	}

	flags.register(cmd)

	return cmd
}
