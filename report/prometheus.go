// SPDX-License-Identifier: MIT

package report

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names of the Prometheus exposition.
const (
	MetricConsistency   = "consistency_agent_consistency"
	MetricInconsistency = "consistency_agent_inconsistency"
	MetricAgents        = "consistency_agents"
	MetricStationary    = "consistency_stationary"
)

func writePrometheus(w io.Writer, s Summary) error {
	families := []*dto.MetricFamily{
		perAgent(MetricConsistency, "Consistency score per agent, in [0,1].", s.Entries,
			func(r Row) float64 { return r.Consistency }),
		perAgent(MetricInconsistency, "Stationary probability per agent, in [0,1].", s.Entries,
			func(r Row) float64 { return r.Inconsistency }),
		gaugeFamily(MetricAgents, "Agents scored by the last evaluation.",
			gauge(float64(s.Agents))),
		gaugeFamily(MetricStationary, "Descriptive statistics of the stationary distribution.",
			gauge(s.Mean, "stat", "mean"),
			gauge(s.StdDev, "stat", "stddev"),
			gauge(s.Min, "stat", "min"),
			gauge(s.Max, "stat", "max"),
		),
	}
	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue // the text format rejects empty families
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

func perAgent(name, help string, rows []Row, pick func(Row) float64) *dto.MetricFamily {
	metrics := make([]*dto.Metric, 0, len(rows))
	for _, r := range rows {
		metrics = append(metrics, gauge(pick(r), "agent", r.Name, "id", r.ID))
	}

	return gaugeFamily(name, help, metrics...)
}

func gaugeFamily(name, help string, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: metrics,
	}
}

// gauge builds a gauge sample; labels are name/value pairs.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}

	return m
}
