package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sulk/lsp"
)

func newLSPCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.NewServer(version, root.cfg).RunStdio()
		},
	}
}
