// Package telemetry exports run statistics as Prometheus metrics. Each
// Recorder owns a private registry so batches never share counters; the
// registry is written out in the node-exporter textfile format.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tracetm/tracetm/sim"
)

// Recorder collects per-run metrics for one invocation.
type Recorder struct {
	registry *prometheus.Registry

	// runs counts finished runs.
	// Labels: outcome (accepted, rejected, limit_exceeded)
	runs *prometheus.CounterVec

	// transitions is the distribution of successors produced per run.
	transitions prometheus.Histogram

	// depth is the distribution of the deepest generation reached per run.
	depth prometheus.Histogram

	// branching is the largest degree of nondeterminism seen so far.
	branching    prometheus.Gauge
	maxBranching int
}

// NewRecorder registers the tracetm collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracetm",
			Name:      "runs_total",
			Help:      "Total simulations by outcome",
		}, []string{"outcome"}),
		transitions: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tracetm",
			Name:      "transitions_simulated",
			Help:      "Transitions simulated per run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		depth: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tracetm",
			Name:      "depth_reached",
			Help:      "Deepest tree generation reached per run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		branching: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracetm",
			Name:      "branching_factor_max",
			Help:      "Largest degree of nondeterminism observed",
		}),
	}
}

// Observe records one finished run.
func (r *Recorder) Observe(res *sim.SimulationResult) {
	r.runs.WithLabelValues(string(res.Outcome.Kind)).Inc()
	r.transitions.Observe(float64(res.TransitionsSimulated))
	r.depth.Observe(float64(res.DepthReached))
	if res.MaxBranchingFactor > r.maxBranching {
		r.maxBranching = res.MaxBranchingFactor
		r.branching.Set(float64(r.maxBranching))
	}
}

// WriteTextfile writes every collected metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
