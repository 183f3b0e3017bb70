package main

import (
	"fmt"

	"github.com/dhamidi/chainparse/format"
	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	var flags parserFlags
	var cursor int

	cmd := &cobra.Command{
		Use:   "complete [input...]",
		Short: "Print what may be typed at the cursor, one suggestion per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(cmd, args)
			if err != nil {
				return err
			}
			_, p, err := flags.parser()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("cursor") {
				cursor = len(input)
			}
			if cursor < 0 || cursor > len(input) {
				return fmt.Errorf("cursor %d outside input of length %d", cursor, len(input))
			}

			res, err := p.Parse(input, cursor)
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			return format.NewLineEncoder(cmd.OutOrStdout()).Encode(res)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&cursor, "cursor", 0, "byte offset of the cursor (default end of input)")

	return cmd
}
