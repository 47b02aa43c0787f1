// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/consistency/consistency"
	"github.com/katalvlaran/consistency/metric"
	"gopkg.in/yaml.v3"
)

// Filter names accepted by engine.filter.
const (
	FilterAll     = "all"
	FilterBeliefs = "beliefs"
	FilterPlans   = "plans"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultAlgorithm   = consistency.AlgorithmExact
	DefaultIterations  = consistency.DefaultIterations
	DefaultEpsilon     = consistency.DefaultEpsilon
	DefaultMetric      = metric.NameNCD
	DefaultCompression = "deflate"
	DefaultFilter      = FilterBeliefs
	DefaultLogLevel    = "info"
)

// Config is the top-level configuration. engine.example.yaml documents every field.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig selects the solver, metric and filter of a consistency engine.
type EngineConfig struct {
	// Algorithm is one of: exact | iterative.
	Algorithm string `yaml:"algorithm"`

	// Iterations is the power-iteration count; iterative only.
	Iterations int `yaml:"iterations"`

	// Seed pins the iterative random source. Absent means unseeded.
	Seed *uint64 `yaml:"seed"`

	// Epsilon is the diagonal self-loop weight.
	Epsilon float64 `yaml:"epsilon"`

	// Workers bounds the matrix fan-out; 0 uses every CPU.
	Workers int `yaml:"workers"`

	// Metric is one of metric.Names().
	Metric string `yaml:"metric"`

	// Normalize divides the symmetric difference by the union size.
	Normalize bool `yaml:"normalize"`

	// Compression is the NCD compressor: deflate | gzip | zstd | s2.
	Compression string `yaml:"compression"`

	// Filter is one of: all | beliefs | plans.
	Filter string `yaml:"filter"`

	// Paths restricts the filter to literals under these path prefixes.
	Paths []string `yaml:"paths"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// File is an optional JSON log file, appended to.
	File string `yaml:"file"`
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", l.Level, err)
	}

	return lvl, nil
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config bytes. Empty input yields Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	normalize(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Algorithm:   DefaultAlgorithm,
			Iterations:  DefaultIterations,
			Epsilon:     DefaultEpsilon,
			Metric:      DefaultMetric,
			Compression: DefaultCompression,
			Filter:      DefaultFilter,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func normalize(cfg *Config) {
	e := &cfg.Engine
	e.Algorithm = strings.ToLower(strings.TrimSpace(e.Algorithm))
	e.Metric = strings.ToLower(strings.TrimSpace(e.Metric))
	e.Compression = strings.ToLower(strings.TrimSpace(e.Compression))
	e.Filter = strings.ToLower(strings.TrimSpace(e.Filter))
}

// validate checks enums and numeric ranges.
func validate(cfg *Config) error {
	e := cfg.Engine
	switch e.Algorithm {
	case consistency.AlgorithmExact, consistency.AlgorithmIterative:
	default:
		return fmt.Errorf("engine.algorithm %q: must be exact or iterative", e.Algorithm)
	}
	if e.Iterations < 1 {
		return fmt.Errorf("engine.iterations must be >= 1, got %d", e.Iterations)
	}
	if math.IsNaN(e.Epsilon) || math.IsInf(e.Epsilon, 0) || e.Epsilon <= 0 {
		return fmt.Errorf("engine.epsilon must be finite and positive, got %v", e.Epsilon)
	}
	if e.Workers < 0 {
		return fmt.Errorf("engine.workers must be >= 0, got %d", e.Workers)
	}
	if _, err := e.BuildMetric(); err != nil {
		return fmt.Errorf("engine.metric: %w", err)
	}
	switch e.Filter {
	case FilterAll, FilterBeliefs, FilterPlans:
	default:
		return fmt.Errorf("engine.filter %q: must be all, beliefs or plans", e.Filter)
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}
