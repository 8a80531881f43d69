package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/sulk/ast"
	"github.com/dhamidi/sulk/config"
	"github.com/dhamidi/sulk/diag"
	"github.com/dhamidi/sulk/parser"
	"github.com/dhamidi/sulk/source"
	"github.com/dhamidi/sulk/watch"
)

var log = commonlog.GetLogger("sulk.cli")

// errCheckFailed is returned when a check emitted errors. The diagnostics
// have already been printed, so main only sets the exit status.
var errCheckFailed = errors.New("check failed")

type checkOptions struct {
	color     string
	format    string
	maxErrors int
	outline   bool
	watch     bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse Solidity files and report syntax errors",
		Long: `Parse each file and print its diagnostics. Directories are searched
recursively for files with one of the configured extensions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *root.cfg
			if cmd.Flags().Changed("color") {
				cfg.Color = opts.color
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = opts.format
			}
			if cmd.Flags().Changed("max-errors") {
				cfg.MaxErrors = opts.maxErrors
			}
			if err := config.Validate(&cfg); err != nil {
				return err
			}

			c := &checker{
				cfg:     &cfg,
				out:     cmd.OutOrStdout(),
				errOut:  cmd.ErrOrStderr(),
				outline: opts.outline,
			}
			if !opts.watch {
				return c.run(args)
			}
			return c.watch(cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.color, "color", "auto", "color diagnostics: auto, always or never")
	cmd.Flags().StringVar(&opts.format, "format", "human", "diagnostic format: human or json")
	cmd.Flags().IntVar(&opts.maxErrors, "max-errors", 0, "stop printing errors after this many (0 for no limit)")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "print the outline of each file")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "check again whenever a file changes")

	return cmd
}

type checker struct {
	cfg     *config.Config
	out     io.Writer
	errOut  io.Writer
	outline bool
}

func (c *checker) newEmitter(sources *source.Map) (diag.Emitter, error) {
	switch c.cfg.Format {
	case "json":
		return diag.NewJSONEmitter(c.errOut), nil
	default:
		mode, err := diag.ParseColorMode(c.cfg.Color)
		if err != nil {
			return nil, err
		}
		return diag.NewHumanEmitter(c.errOut, sources, mode), nil
	}
}

// run checks every file under paths in one session, so the error count at
// the end covers all of them.
func (c *checker) run(paths []string) error {
	files, err := c.collect(paths)
	if err != nil {
		return err
	}

	sources := source.NewMap()
	emitter, err := c.newEmitter(sources)
	if err != nil {
		return err
	}
	dcx := diag.NewContext(emitter, diag.WithMaxErrors(c.cfg.MaxErrors))
	sess := parser.NewSession(sources, dcx)

	for _, path := range files {
		f, err := sources.LoadFile(path)
		if err != nil {
			dcx.Errf("couldn't read %s: %v", path, err).Emit()
			continue
		}
		log.Debugf("checking %s", path)
		unit := parser.ParseFile(sess, f)
		if c.outline {
			if err := c.printOutline(path, unit); err != nil {
				return err
			}
		}
	}

	if c.cfg.Format == "human" {
		dcx.PrintErrorCount()
	}
	if err := dcx.Finish(); err != nil {
		log.Errorf("%s", err)
	}
	if dcx.HasErrors() {
		return errCheckFailed
	}
	return nil
}

func (c *checker) printOutline(path string, unit *ast.Node) error {
	if c.cfg.Format == "json" {
		return json.NewEncoder(c.out).Encode(map[string]any{"file": path, "outline": unit})
	}
	_, err := fmt.Fprintf(c.out, "%s:\n%s", path, unit)
	return err
}

// watch runs a full check, then checks each file again as it changes until
// interrupted.
func (c *checker) watch(cmd *cobra.Command, paths []string) error {
	if err := c.run(paths); err != nil && !errors.Is(err, errCheckFailed) {
		return err
	}

	w, err := watch.New(paths, c.cfg.Extensions, func(path string) {
		fmt.Fprintf(c.errOut, "--- %s\n", path)
		if err := c.run([]string{path}); err != nil && !errors.Is(err, errCheckFailed) {
			log.Errorf("check %s: %v", path, err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return w.Run(ctx)
}

// collect expands directories into the files below them that carry one of
// the configured extensions. Files named explicitly are kept as given.
func (c *checker) collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if c.cfg.HasExtension(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}
	return files, nil
}
