package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/sulk/config"
)

const version = "0.1.0"

// rootOptions holds the persistent flags and the configuration they resolve
// to. Subcommands read cfg after the root's PersistentPreRunE has run.
type rootOptions struct {
	configPath string
	verbosity  int
	logFile    string

	cfg *config.Config
}

func main() {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "sulk",
		Short:         "Parse and check Solidity source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to "+config.FileName)
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newLexCmd())
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbosity = o.verbosity
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}

	var logPath *string
	if cfg.LogFile != "" {
		logPath = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, logPath)

	o.cfg = cfg
	return nil
}
