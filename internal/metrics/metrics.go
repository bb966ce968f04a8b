package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the metrics of one command run. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	outcomes    *prometheus.CounterVec
	vcsDuration *prometheus.HistogramVec
	vcsErrors   *prometheus.CounterVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depot_dependency_outcomes_total",
				Help: "Number of dependency results by engine operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		vcsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depot_vcs_duration_seconds",
				Help:    "Time taken by version control calls.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		vcsErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depot_vcs_errors_total",
				Help: "Number of failed version control calls.",
			},
			[]string{"op"},
		),
	}
	r.registry.MustRegister(r.outcomes, r.vcsDuration, r.vcsErrors)
	return r
}

// Outcome counts one dependency result.
func (r *Recorder) Outcome(operation, outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(operation, outcome).Inc()
}

// VCS records the duration of a version control call started at start.
func (r *Recorder) VCS(op string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.vcsDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		r.vcsErrors.WithLabelValues(op).Inc()
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteToTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteToTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
