// Package cli implements the go_chrono command line.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go_chrono/config"
	"go_chrono/state"
)

type app struct {
	configPath string
	logLevel   string
	timezone   string
	strict     bool
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger
	stderr io.Writer
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "go_chrono [markdown-file-or-directory]",
		Short: "Find dates in plain English and remind you when they come due",
		Long: `go_chrono reads dates written the way people write them ("next friday at 3pm",
"2 days after Jan 20", "in 90 minutes PST") and resolves them to instants.

With a file or directory it watches the markdown for [remind_me <date> <text>]
tags and shows them in a terminal interface as they come due.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.runTUI(path)
		},
	}
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ~/.config/go_chrono/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.timezone, "timezone", "", "Reference timezone: abbreviation, offset or IANA name")
	flags.BoolVar(&a.strict, "strict", false, "Only accept formal date expressions")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output JSON even on a terminal")

	root.AddCommand(a.newParseCmd(), a.newScanCmd(), a.newWatchCmd())
	return root
}

// setup loads the config file and lets flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	flags := cmd.Flags()
	if flags.Changed("timezone") {
		a.cfg.Timezone = a.timezone
	}
	if flags.Changed("strict") {
		a.cfg.Strict = a.strict
	}
	if flags.Changed("log-level") {
		a.cfg.LogLevel = a.logLevel
	}

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: a.cfg.Level()}))
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) openStore() (*state.Store, error) {
	dir := a.cfg.StateDir
	if dir == "" {
		var err error
		if dir, err = state.DefaultDir(); err != nil {
			return nil, err
		}
	}
	return state.Open(dir)
}
