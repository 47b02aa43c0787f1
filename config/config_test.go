// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/consistency/config"
	"github.com/katalvlaran/consistency/consistency"
	"github.com/katalvlaran/consistency/metric"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "exact", cfg.Engine.Algorithm)
	require.Equal(t, 8, cfg.Engine.Iterations)
	require.Equal(t, 0.001, cfg.Engine.Epsilon)
	require.Equal(t, "ncd", cfg.Engine.Metric)
	require.Equal(t, "beliefs", cfg.Engine.Filter)

	m, err := cfg.Engine.BuildMetric()
	require.NoError(t, err)
	require.Equal(t, metric.NCD{Compression: metric.Deflate}, m)
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
engine:
  algorithm: Iterative
  iterations: 32
  seed: 7
  epsilon: 0.01
  workers: 2
  metric: symmetric-difference
  normalize: true
  filter: all
  paths: [first, second/sub]
log:
  level: debug
  file: /tmp/consistency.log
`))
	require.NoError(t, err)
	require.Equal(t, "iterative", cfg.Engine.Algorithm)
	require.NotNil(t, cfg.Engine.Seed)
	require.Equal(t, uint64(7), *cfg.Engine.Seed)
	require.Equal(t, []string{"first", "second/sub"}, cfg.Engine.Paths)
	require.Equal(t, "/tmp/consistency.log", cfg.Log.File)

	s, err := cfg.Engine.BuildSolver()
	require.NoError(t, err)
	require.Equal(t, "iterative(k=32)", s.String())

	m, err := cfg.Engine.BuildMetric()
	require.NoError(t, err)
	require.Equal(t, metric.SymmetricDifference{Normalized: true}, m)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"algorithm":   "engine: {algorithm: genetic}",
		"iterations":  "engine: {iterations: 0}",
		"epsilon":     "engine: {epsilon: -1}",
		"workers":     "engine: {workers: -2}",
		"metric":      "engine: {metric: hamming}",
		"compression": "engine: {compression: bzip2}",
		"filter":      "engine: {filter: desires}",
		"level":       "log: {level: loud}",
		"yaml":        "engine: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.Error(t, err)
			require.ErrorContains(t, err, "config:")
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: {metric: discrete}\n"), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "discrete", cfg.Engine.Metric)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read file")
}

func TestLoad_Example(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("engine.example.yaml")
	require.NoError(t, err)

	want := config.Default()
	require.Equal(t, want.Log, cfg.Log)
	require.NotNil(t, cfg.Engine.Seed)
	require.Equal(t, uint64(42), *cfg.Engine.Seed)
	require.Empty(t, cfg.Engine.Paths)

	cfg.Engine.Seed, cfg.Engine.Paths = nil, nil
	require.Equal(t, want.Engine, cfg.Engine)
}

func TestBuildSolver_Exact(t *testing.T) {
	t.Parallel()

	s, err := config.Default().Engine.BuildSolver()
	require.NoError(t, err)
	require.Equal(t, consistency.Exact{}, s)
}
