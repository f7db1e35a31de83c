// Package metrics counts calculations for the node_exporter textfile
// collector. CarbonRoots serves no HTTP endpoint; when a textfile path is
// configured the registry is written there after every calculation.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "carbonroots"

// Recorder holds the CarbonRoots collectors on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	logFailures  prometheus.Counter
	sequestered  prometheus.Counter
	textfile     string
}

// New creates a Recorder. An empty textfile disables Flush.
func New(textfile string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed sequestration calculations by tree species.",
		}, []string{"species"}),
		logFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_log_failures_total",
			Help:      "Calculations whose usage log entry could not be persisted.",
		}),
		sequestered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequestered_kg_total",
			Help:      "Sum of CO2 totals (kg) of all calculations.",
		}),
		textfile: textfile,
	}
	r.registry.MustRegister(r.calculations, r.logFailures, r.sequestered)
	return r
}

// ObserveCalculation records one completed calculation.
func (r *Recorder) ObserveCalculation(species string, totalKg float64) {
	if r == nil {
		return
	}
	r.calculations.WithLabelValues(species).Inc()
	if totalKg > 0 {
		r.sequestered.Add(totalKg)
	}
}

// ObserveLogFailure records a usage log write that failed.
func (r *Recorder) ObserveLogFailure() {
	if r == nil {
		return
	}
	r.logFailures.Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Flush writes all metrics to the configured textfile.
func (r *Recorder) Flush() error {
	if r == nil || r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", r.textfile, err)
	}
	return nil
}
