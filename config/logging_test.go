// SPDX-License-Identifier: MIT

package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/consistency/config"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var stderr, file bytes.Buffer
	logger := config.NewLogger(&stderr, &file, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("evaluated", "entities", 3)

	require.Contains(t, stderr.String(), "msg=evaluated")
	require.Contains(t, stderr.String(), "entities=3")
	require.NotContains(t, stderr.String(), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &rec))
	require.Equal(t, "evaluated", rec["msg"])
	require.Equal(t, float64(3), rec["entities"])
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	logger := config.NewLogger(&stderr, nil, slog.LevelDebug)
	logger.Debug("solving", "solver", "exact")
	require.Contains(t, stderr.String(), "solver=exact")
}

func TestSetupLogger_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")
	logger, cleanup := config.SetupLogger(path, slog.LevelWarn)
	logger.Warn("degenerate")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"degenerate"`)

	logger, cleanup = config.SetupLogger("", slog.LevelWarn)
	require.NotNil(t, logger)
	require.NoError(t, cleanup())

	// An unopenable file falls back to stderr.
	logger, cleanup = config.SetupLogger(filepath.Join(t.TempDir(), "missing", "run.log"), slog.LevelWarn)
	require.NotNil(t, logger)
	require.NoError(t, cleanup())
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	lvl, err := config.LogConfig{Level: "debug"}.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
	_, err = config.LogConfig{Level: "chatty"}.SlogLevel()
	require.Error(t, err)
}
