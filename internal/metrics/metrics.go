// Package metrics counts what a scrapetab run located, kept and dropped.
//
// Every run owns its own registry; nothing is registered globally. A run that
// is given a Pushgateway URL pushes its registry once at the end, which is
// how short-lived batch jobs are monitored with Prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Pipeline label values.
const (
	PipelineListings = "listings"
	PipelineQuery    = "query"
)

// Recorder holds the metrics of one run.
// All methods are safe to call on a nil *Recorder, which records nothing.
type Recorder struct {
	registry *prometheus.Registry

	candidates    *prometheus.CounterVec
	records       *prometheus.CounterVec
	dropped       *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapetab_candidates_total",
				Help: "Candidates located, labeled by the locator tier that found them.",
			},
			[]string{"pipeline", "tier"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapetab_records_total",
				Help: "Records that survived normalization.",
			},
			[]string{"pipeline"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapetab_dropped_total",
				Help: "Candidates dropped during normalization.",
			},
			[]string{"pipeline"},
		),
		fetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapetab_fetch_failures_total",
				Help: "Failed fetches, labeled by failure kind.",
			},
			[]string{"pipeline", "kind"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrapetab_fetch_duration_seconds",
				Help:    "Duration of fetches and queries in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pipeline"},
		),
	}

	r.registry.MustRegister(r.candidates, r.records, r.dropped, r.fetchFailures, r.fetchDuration)
	return r
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// AddCandidates counts n candidates located by tier.
func (r *Recorder) AddCandidates(pipeline, tier string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.candidates.WithLabelValues(pipeline, tier).Add(float64(n))
}

// IncRecords counts one kept record.
func (r *Recorder) IncRecords(pipeline string) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(pipeline).Inc()
}

// IncDropped counts one dropped candidate.
func (r *Recorder) IncDropped(pipeline string) {
	if r == nil {
		return
	}
	r.dropped.WithLabelValues(pipeline).Inc()
}

// IncFetchFailure counts one failed fetch of the given kind.
func (r *Recorder) IncFetchFailure(pipeline, kind string) {
	if r == nil {
		return
	}
	r.fetchFailures.WithLabelValues(pipeline, kind).Inc()
}

// ObserveFetch records how long a fetch took.
func (r *Recorder) ObserveFetch(pipeline string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(pipeline).Observe(d.Seconds())
}

// Push sends the registry to the Pushgateway at url under job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if r == nil || url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
