// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

func writeTable(w io.Writer, s Summary) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("AGENT", "CONSISTENCY", "INCONSISTENCY", "ID").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range s.Entries {
		t.Row(r.Name, formatScore(r.Consistency), formatScore(r.Inconsistency), r.ID)
	}

	footer := fmt.Sprintf("%d agents, solver %s", s.Agents, s.Solver)
	if s.Metric != "" {
		footer += ", metric " + s.Metric
	}
	footer += fmt.Sprintf(", π mean %s ± %s", formatScore(s.Mean), formatScore(s.StdDev))

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), footerStyle.Render(footer))

	return err
}

func formatScore(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
