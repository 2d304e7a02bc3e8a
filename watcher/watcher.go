// Package watcher re-reads markdown files as they change.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"go_chrono/parser"
	"go_chrono/reminder"
)

// FileEvent carries the reminders of a file that was written or created.
type FileEvent struct {
	FilePath  string
	Reminders []*reminder.Reminder
	Err       error
}

// Watcher watches files/directories for changes and parses reminders
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	opts      parser.Options
	logger    *slog.Logger
	Events    chan FileEvent
	done      chan struct{}
}

// New creates a Watcher that parses with opts. The reference time in opts
// is replaced by the time of each change.
func New(opts parser.Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fsWatcher: fsw,
		opts:      opts,
		logger:    logger.With("component", "watcher"),
		Events:    make(chan FileEvent, 10),
		done:      make(chan struct{}),
	}, nil
}

// WatchFile adds a single file to the watch list
func (w *Watcher) WatchFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.fsWatcher.Add(absPath)
}

// WatchDirectory watches dir and every directory below it.
func (w *Watcher) WatchDirectory(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !isMarkdown(path) {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.logger.Warn("could not watch", "path", path, "err", err)
		}
		return nil
	})
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.run()
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	close(w.done)
	w.fsWatcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if !isMarkdown(event.Name) {
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := w.WatchDirectory(event.Name); err != nil {
							w.logger.Warn("could not watch new directory", "path", event.Name, "err", err)
						}
					}
				}
				continue
			}

			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			reminders, err := parser.ParseFileWith(event.Name, w.options(time.Now()))
			select {
			case w.Events <- FileEvent{FilePath: event.Name, Reminders: reminders, Err: err}:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch failed", "err", err)
		}
	}
}

func (w *Watcher) options(now time.Time) parser.Options {
	opts := w.opts
	opts.Parse.Reference = now
	opts.Logger = w.logger
	return opts
}

// ParseInitial parses a file, or every markdown file below a directory,
// and reports whether path was a directory. Files that cannot be read are
// logged and skipped.
func ParseInitial(path string, opts parser.Options) ([]*reminder.Reminder, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if opts.Parse.Reference.IsZero() {
		opts.Parse.Reference = time.Now()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !info.IsDir() {
		reminders, err := parser.ParseFileWith(path, opts)
		return reminders, false, err
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isMarkdown(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, true, err
	}

	perFile := make([][]*reminder.Reminder, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			reminders, err := parser.ParseFileWith(file, opts)
			if err != nil {
				logger.Warn("could not parse", "path", file, "err", err)
				return nil
			}
			perFile[i] = reminders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, true, err
	}

	var all []*reminder.Reminder
	for _, rs := range perFile {
		all = append(all, rs...)
	}
	return all, true, nil
}

func isMarkdown(path string) bool {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return true
	}
	return false
}
