package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "payroll"

// Registry holds every payroll metric. It is private to the process so the
// CLI never exposes the default go runtime collectors.
var Registry = prometheus.NewRegistry()

var (
	// LookupsTotal counts name service lookups by kind ("address", "name")
	// and result ("found", "none", "error").
	LookupsTotal = MustRegisterCounterVec(
		"resolver", "lookups_total",
		"Number of name service lookups issued by the input resolver.",
		"kind", "result",
	)

	// StaleResultsTotal counts lookup completions that arrived after a newer
	// input superseded them.
	StaleResultsTotal = MustRegisterCounter(
		"resolver", "stale_results_total",
		"Number of lookup results discarded because a newer input was pending.",
	)

	// CacheRequestsTotal counts ENS cache lookups by method and result
	// ("hit", "miss").
	CacheRequestsTotal = MustRegisterCounterVec(
		"ens", "cache_requests_total",
		"Number of ENS cache lookups.",
		"method", "result",
	)

	// SubmissionsTotal counts batch submissions by outcome.
	SubmissionsTotal = MustRegisterCounterVec(
		"distribution", "submissions_total",
		"Number of batch submission attempts by outcome.",
		"outcome",
	)

	// RecipientsSubmitted observes the size of each submitted batch.
	RecipientsSubmitted = MustRegisterHistogram(
		"distribution", "batch_size",
		"Number of recipients in each submitted batch.",
		prometheus.ExponentialBuckets(1, 2, 10),
	)
)

// MustRegisterCounterVec creates and registers a counter vector.
func MustRegisterCounterVec(component, name, help string, labelNames ...string) *prometheus.CounterVec {
	m := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	}, labelNames)
	Registry.MustRegister(m)
	return m
}

// MustRegisterCounter creates and registers a counter.
func MustRegisterCounter(component, name, help string) prometheus.Counter {
	m := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	})
	Registry.MustRegister(m)
	return m
}

// MustRegisterHistogram creates and registers a histogram.
func MustRegisterHistogram(component, name, help string, buckets []float64) prometheus.Histogram {
	m := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	Registry.MustRegister(m)
	return m
}

// Summary renders every non zero counter and histogram of Registry as
// "name{labels}" / value rows, sorted by name.
func Summary() ([][]string, error) {
	families, err := Registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("couldn't gather metrics: %w", err)
	}
	rows := [][]string{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := []string{}
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				if v := m.GetCounter().GetValue(); v > 0 {
					rows = append(rows, []string{name, fmt.Sprintf("%g", v)})
				}
			case m.GetHistogram() != nil:
				if c := m.GetHistogram().GetSampleCount(); c > 0 {
					rows = append(rows, []string{
						name,
						fmt.Sprintf("count=%d sum=%g", c, m.GetHistogram().GetSampleSum()),
					})
				}
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows, nil
}
