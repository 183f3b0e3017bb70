package main

import (
	"github.com/dhamidi/chainparse/grammars"
	"github.com/dhamidi/chainparse/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammars.Lookup(name)
			if err != nil {
				return err
			}
			server := lsp.NewServer("chainparse-"+g.Name, version, g.Parser())
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&name, "grammar", "g", "select", "grammar of the edited documents")

	return cmd
}
