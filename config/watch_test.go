// SPDX-License-Identifier: MIT

package config_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/consistency/config"
	"github.com/stretchr/testify/require"
)

// startWatch runs config.Watch on path in the background and returns the
// channel of reported paths. The watcher stops with the test.
func startWatch(t *testing.T, path string) <-chan string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 64)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, slog.New(slog.DiscardHandler), func(p string) error {
			select {
			case changed <- p:
			default:
			}
			return nil
		}, path)
	}()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return changed
}

// drain discards reports until the watcher has been quiet for a while.
func drain(changed <-chan string) {
	for {
		select {
		case <-changed:
		case <-time.After(200 * time.Millisecond):
			return
		}
	}
}

// awaitChange repeats save until the watcher reports path. The watcher
// registers asynchronously, so the first save may go unseen.
func awaitChange(t *testing.T, changed <-chan string, path string, save func()) {
	t.Helper()

	drain(changed)
	save()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case got := <-changed:
			require.Equal(t, path, got)
			return
		case <-tick.C:
			save()
		case <-deadline:
			t.Fatalf("no change reported for %s", path)
		}
	}
}

func TestWatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "population.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents: []\n"), 0o644))
	changed := startWatch(t, path)

	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("agents: []\n"), 0o644))
	})
}

func TestWatch_AtomicSaves(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: {}\n"), 0o644))
	changed := startWatch(t, path)

	// Make sure the watcher is live before replacing the file.
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("engine: {}\n"), 0o644))
	})

	for i := 0; i < 2; i++ {
		awaitChange(t, changed, path, func() {
			tmp := filepath.Join(dir, ".engine.yaml.tmp")
			body := fmt.Sprintf("engine:\n  iterations: %d\n", i+1)
			require.NoError(t, os.WriteFile(tmp, []byte(body), 0o644))
			require.NoError(t, os.Rename(tmp, path))
		})
	}

	// Plain writes still register after the inode was replaced.
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("engine: {}\n"), 0o644))
	})
}

func TestWatch_IgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "population.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents: []\n"), 0o644))
	changed := startWatch(t, path)

	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("agents: []\n"), 0o644))
	})

	drain(changed)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case got := <-changed:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_MissingFile(t *testing.T) {
	t.Parallel()

	err := config.Watch(context.Background(), slog.New(slog.DiscardHandler), func(string) error { return nil },
		filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
