// SPDX-License-Identifier: MIT

// Package config loads the engine and logging configuration (engine.yaml).
//
// Top-level types:
//   - Config{Engine, Log}: full tree parsed from YAML.
//   - EngineConfig: algorithm (exact|iterative), iterations, seed, epsilon,
//     workers, metric, normalize, compression, filter (all|beliefs|plans), paths.
//   - LogConfig: level (debug|info|warn|error) and an optional JSON log file.
//
// Load(path) and Parse(data) apply defaults (exact, ε = 0.001, k = 8, ncd over
// deflate, beliefs filter), then validate every enum so unknown names fail
// before an engine is built. NewEngine turns an EngineConfig into a ready
// consistency.Engine.
//
// SetupLogger fans slog records out to a text handler on stderr and a JSON
// handler on the log file. Watch re-runs a callback whenever one of the given
// files is written, following atomic-save editors across renames.
package config
