package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// recheckDelay collapses bursts of editor writes into one check.
const recheckDelay = 150 * time.Millisecond

var errCheckFailed = errors.New("rule check failed")

func checkCmd(g *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate rule files",
		Long: `check loads every rule file into a fresh rule table (after the
configured rules) and reports the first failing line of each.

With --watch the files are checked again whenever they change, until
interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				if !g.checkFiles(cmd, args) {
					return errCheckFailed
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return g.watchFiles(ctx, cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check files when they change")
	return cmd
}

// checkFiles reports every file and returns false if any failed.
func (g *globalFlags) checkFiles(cmd *cobra.Command, paths []string) bool {
	ok := true
	for _, path := range paths {
		n, err := g.checkFile(cmd, path)
		if err != nil {
			ok = false
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAIL: %v\n", path, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d rules)\n", path, n)
	}
	return ok
}

func (g *globalFlags) checkFile(cmd *cobra.Command, path string) (int, error) {
	s, err := g.session(cmd)
	if err != nil {
		return 0, err
	}
	defer s.ctx.Close()
	return s.ctx.LoadRulesFile(path)
}

// watchFiles checks paths once and again after every change until ctx ends.
// Parent directories are watched so that editors replacing a file by rename
// are noticed too.
func (g *globalFlags) watchFiles(ctx context.Context, cmd *cobra.Command, paths []string) error {
	log := g.logger(cmd)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	g.checkFiles(cmd, paths)
	log.Info("Watching rule files", slog.Int("files", len(paths)))

	timer := time.NewTimer(recheckDelay)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			log.Info("Watch stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("Rule file changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(recheckDelay)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			g.checkFiles(cmd, paths)
		}
	}
}
