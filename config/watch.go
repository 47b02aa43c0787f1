// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// Watch calls onChange with the path of every watched file that is written,
// created or renamed, until ctx is cancelled. Errors from onChange are logged
// and watching continues.
//
// Each file's parent directory is watched rather than the file itself, so
// editors that save by renaming a temporary file over the target keep
// triggering reloads after the old inode is gone.
func Watch(ctx context.Context, logger *slog.Logger, onChange func(path string) error, paths ...string) error {
	targets := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config: watch: %w", err)
		}
		targets[filepath.Clean(p)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := lo.Uniq(lo.Map(lo.Keys(targets), func(p string, _ int) string { return filepath.Dir(p) }))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("config: watch %s: %w", dir, err)
		}
	}
	logger.Info("config: watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(event.Name)
			if _, watched := targets[name]; !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := onChange(name); err != nil {
				logger.Error("config: reload failed, keeping previous state", "path", name, "err", err)
				continue
			}
			logger.Info("config: reloaded", "path", name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config: watcher error", "err", err)
		}
	}
}
