package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go_chrono/parser"
	"go_chrono/reminder"
	"go_chrono/tui"
	"go_chrono/watcher"
)

func (a *app) parserOptions(mentions bool) parser.Options {
	opts := a.cfg.Options(time.Now())
	opts.Logger = a.logger
	return parser.Options{Parse: opts, Mentions: mentions, Logger: a.logger}
}

func (a *app) newScanCmd() *cobra.Command {
	var mentions bool
	cmd := &cobra.Command{
		Use:   "scan <markdown-file-or-directory>",
		Short: "List the reminders in markdown files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reminders, _, err := watcher.ParseInitial(args[0], a.parserOptions(mentions))
			if err != nil {
				return errors.Wrapf(err, "scanning %s", args[0])
			}
			reminder.SortByDateTime(reminders)
			reminder.Refresh(reminders, time.Now())

			out := cmd.OutOrStdout()
			if a.jsonOutput || !isTerminal(out) {
				return writeRemindersJSON(out, reminders)
			}
			writeRemindersText(out, reminders)
			return nil
		},
	}
	cmd.Flags().BoolVar(&mentions, "mentions", false, "Also list every date mentioned in prose")
	return cmd
}

func (a *app) newWatchCmd() *cobra.Command {
	var mentions bool
	cmd := &cobra.Command{
		Use:   "watch <markdown-file-or-directory>",
		Short: "Print reminders as files change and as they come due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0], mentions)
		},
	}
	cmd.Flags().BoolVar(&mentions, "mentions", false, "Also track every date mentioned in prose")
	return cmd
}

// watch streams reminders to out until ctx is done.
func (a *app) watch(ctx context.Context, out io.Writer, path string, mentions bool) error {
	opts := a.parserOptions(mentions)
	reminders, w, err := a.startWatcher(path, opts)
	if err != nil {
		return err
	}
	defer w.Stop()

	asJSON := a.jsonOutput || !isTerminal(out)
	emit := func(rs []*reminder.Reminder) error {
		if asJSON {
			return writeRemindersJSON(out, rs)
		}
		writeRemindersText(out, rs)
		return nil
	}
	reminder.Refresh(reminders, time.Now())
	if err := emit(reminders); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.Events:
			if event.Err != nil {
				a.logger.Warn("could not parse", "path", event.FilePath, "err", event.Err)
				continue
			}
			reminders = reminder.MergeFromFile(reminders, event.FilePath, event.Reminders)
			reminder.SortByDateTime(reminders)
			a.logger.Info("file updated", "path", event.FilePath, "reminders", len(event.Reminders))
			if err := emit(event.Reminders); err != nil {
				return err
			}
		case now := <-ticker.C:
			var due []*reminder.Reminder
			for _, r := range reminders {
				if r.Status == reminder.Pending && r.IsDue(now) {
					due = append(due, r)
				}
			}
			if len(due) == 0 {
				continue
			}
			reminder.Refresh(due, now)
			if err := emit(due); err != nil {
				return err
			}
		}
	}
}

// startWatcher parses path and watches it for changes.
func (a *app) startWatcher(path string, opts parser.Options) ([]*reminder.Reminder, *watcher.Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolving path")
	}
	reminders, isDir, err := watcher.ParseInitial(absPath, opts)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", path)
	}

	w, err := watcher.New(opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating watcher")
	}
	if isDir {
		err = w.WatchDirectory(absPath)
	} else {
		err = w.WatchFile(absPath)
	}
	if err != nil {
		w.Stop()
		return nil, nil, errors.Wrapf(err, "watching %s", path)
	}
	w.Start()
	return reminders, w, nil
}

// runTUI opens the interface, watching path when one is given.
func (a *app) runTUI(path string) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	// the interface owns the terminal, so logs go next to the state file
	logFile, err := os.OpenFile(filepath.Join(filepath.Dir(store.Path()), "go_chrono.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "opening log file")
	}
	defer logFile.Close()
	a.logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: a.cfg.Level()}))
	slog.SetDefault(a.logger)

	opts := a.parserOptions(false)
	var reminders []*reminder.Reminder
	var events chan tui.FileUpdateMsg
	if path != "" {
		var w *watcher.Watcher
		reminders, w, err = a.startWatcher(path, opts)
		if err != nil {
			return err
		}
		defer w.Stop()

		events = make(chan tui.FileUpdateMsg, 10)
		go func() {
			for event := range w.Events {
				if event.Err != nil {
					a.logger.Warn("could not parse", "path", event.FilePath, "err", event.Err)
					continue
				}
				events <- tui.FileUpdateMsg{FilePath: event.FilePath, Reminders: event.Reminders}
			}
		}()
	}
	if err := store.Apply(reminders); err != nil {
		a.logger.Warn("restoring state", "err", err)
	}

	model := tui.New(reminders, events, tui.Options{Parse: opts.Parse, Store: store, Logger: a.logger})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "running TUI")
	}
	return nil
}
