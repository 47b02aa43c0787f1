// SPDX-License-Identifier: MIT

package consistency

import "errors"

// Sentinel errors. Construction-time errors are returned by New; evaluation
// errors wrap metric.ErrInvalidDistance or matrix sentinels instead.
var (
	// ErrNilFilter indicates that New was called without a filter.
	ErrNilFilter = errors.New("consistency: filter is nil")

	// ErrNilMetric indicates that New was called without a metric.
	ErrNilMetric = errors.New("consistency: metric is nil")

	// ErrNilSolver indicates that a nil solver was configured.
	ErrNilSolver = errors.New("consistency: solver is nil")

	// ErrInvalidEpsilon indicates a self-loop weight that is not finite and > 0.
	ErrInvalidEpsilon = errors.New("consistency: epsilon must be finite and > 0")

	// ErrInvalidIterations indicates a power-iteration count below 1.
	ErrInvalidIterations = errors.New("consistency: iterations must be >= 1")

	// ErrInvalidWorkers indicates a negative worker limit.
	ErrInvalidWorkers = errors.New("consistency: workers must be >= 0")
)
