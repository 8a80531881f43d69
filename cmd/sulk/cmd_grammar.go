package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sulk/grammar"
	"github.com/dhamidi/sulk/lexer"
	"github.com/dhamidi/sulk/source"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Tools for the EBNF description of the outline grammar",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarKeywordsCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar, the built-in one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				filename = grammar.FileName
				r        io.Reader
			)
			if len(args) == 1 {
				filename = args[0]
				f, err := os.Open(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				r = f
			} else {
				r = strings.NewReader(grammar.Source())
				if !cmd.Flags().Changed("start") {
					startProduction = grammar.Start
				}
			}

			if _, err := grammar.Check(filename, r, startProduction); err != nil {
				w := cmd.OutOrStdout()
				for _, e := range grammar.Errors(err) {
					fmt.Fprintln(w, e)
				}
				return fmt.Errorf("%s is not valid", filename)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Source())
			return err
		},
	}
}

func newGrammarKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List the keywords used by the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			for _, kw := range grammar.Keywords(g) {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}
}

func newGrammarMatchCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "match <file>...",
		Short: "Check that Solidity files are sentences of the built-in grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			r, err := grammar.NewRecognizer(g, startProduction)
			if err != nil {
				return err
			}

			sources := source.NewMap()
			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				f, err := sources.LoadFile(path)
				if err != nil {
					return fmt.Errorf("read source: %w", err)
				}
				if err := r.Recognize(lexer.FromSourceFile(f).Tokens()); err != nil {
					fmt.Fprintln(w, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) do not match", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "production each file is matched against")

	return cmd
}
