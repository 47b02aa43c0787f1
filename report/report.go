// SPDX-License-Identifier: MIT

// Package report renders the result of a consistency evaluation over agents
// as a terminal table, JSON or Prometheus text exposition.
package report

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/katalvlaran/consistency/agent"
	"github.com/katalvlaran/consistency/consistency"
)

// Format selects an output encoding.
type Format string

// Supported formats.
const (
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatPrometheus Format = "prom"
)

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatPrometheus:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q (want table, json or prom)", ErrUnknownFormat, s)
}

// Row is the score of one agent.
type Row struct {
	Name          string  `json:"name"`
	ID            string  `json:"id"`
	Consistency   float64 `json:"consistency"`
	Inconsistency float64 `json:"inconsistency"`
}

// Summary aggregates one evaluation. Statistics fields are zero when no
// stationary vector was computed.
type Summary struct {
	Solver  string  `json:"solver"`
	Metric  string  `json:"metric,omitempty"`
	Agents  int     `json:"agents"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Entries []Row   `json:"entries"`
}

// Collect snapshots eng. Rows are ordered from least to most consistent,
// ties broken by name.
func Collect(eng *consistency.Engine[*agent.Agent], metricName string) Summary {
	s := Summary{Solver: eng.Solver().String(), Metric: metricName}
	for a, score := range eng.Scores() {
		s.Entries = append(s.Entries, Row{
			Name:          a.Name(),
			ID:            a.ID().String(),
			Consistency:   score.Consistency,
			Inconsistency: score.Inconsistency,
		})
	}
	slices.SortFunc(s.Entries, func(a, b Row) int {
		return cmp.Or(cmp.Compare(a.Consistency, b.Consistency), cmp.Compare(a.Name, b.Name))
	})
	s.Agents = len(s.Entries)

	if st := eng.Statistics(); st.N() > 0 {
		s.Mean, s.StdDev, s.Min, s.Max = st.Mean(), st.StdDev(), st.Min(), st.Max()
	}

	return s
}

// Write renders s to w in format f.
func Write(w io.Writer, f Format, s Summary) error {
	switch f {
	case FormatTable:
		return writeTable(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatPrometheus:
		return writePrometheus(w, s)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
