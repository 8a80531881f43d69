package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sulk/lexer"
	"github.com/dhamidi/sulk/source"
)

func newLexCmd() *cobra.Command {
	var includeComments bool

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a Solidity file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := source.NewMap().LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}

			lx := lexer.FromSourceFile(f)
			toks := lx.Tokens()
			if includeComments {
				toks = lx.AllTokens()
			}

			w := cmd.OutOrStdout()
			for _, t := range toks {
				fmt.Fprintf(w, "%s\t%s\n", t.Span, t.FullDescription())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeComments, "comments", false, "include comments")

	return cmd
}
