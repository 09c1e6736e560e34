// Package metrics collects per-run ingestion metrics and pushes them to a
// Prometheus Pushgateway. The job exits after each run, so nothing is scraped.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"signal_monitor/internal/domain"
)

const namespace = "signal_monitor"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder owns a private registry so repeated runs in one process and
// parallel tests never collide on the default registerer.
type Recorder struct {
	registry *prometheus.Registry

	QueriesTotal     *prometheus.CounterVec
	SignalsFetched   prometheus.Counter
	SignalsUnique    prometheus.Gauge
	BatchesTotal     *prometheus.CounterVec
	SignalsInserted  prometheus.Counter
	SignalsDuplicate prometheus.Counter
	SignalsPublished prometheus.Counter
	PruneTotal       *prometheus.CounterVec
	RunDuration      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Search queries executed, by outcome",
		}, []string{"status"}),
		SignalsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_fetched_total",
			Help:      "Items parsed from search feeds before deduplication",
		}),
		SignalsUnique: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "signals_unique",
			Help:      "Unique signals accumulated in the last run",
		}),
		BatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Insert batches submitted, by outcome",
		}, []string{"status"}),
		SignalsInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_inserted_total",
			Help:      "Signals the store reported as newly inserted",
		}),
		SignalsDuplicate: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_duplicate_total",
			Help:      "Signals the store skipped as duplicates",
		}),
		SignalsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_published_total",
			Help:      "Inserted signals announced on the message bus",
		}),
		PruneTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prune_total",
			Help:      "Prune operations, by outcome",
		}, []string{"status"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

func (r *Recorder) ObserveQuery(items int, err error) {
	r.QueriesTotal.WithLabelValues(status(err)).Inc()
	r.SignalsFetched.Add(float64(items))
}

func (r *Recorder) ObserveBatch(inserted, duplicates int, err error) {
	r.BatchesTotal.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	r.SignalsInserted.Add(float64(inserted))
	r.SignalsDuplicate.Add(float64(duplicates))
}

func (r *Recorder) ObservePrune(err error) {
	r.PruneTotal.WithLabelValues(status(err)).Inc()
}

func (r *Recorder) ObservePublished() {
	r.SignalsPublished.Inc()
}

// ObserveRun records the run-level gauges once a run has finished.
func (r *Recorder) ObserveRun(stats *domain.RunStats) {
	r.SignalsUnique.Set(float64(stats.Unique))
	r.RunDuration.Set(stats.Duration.Seconds())
	r.LastRunTimestamp.SetToCurrentTime()
}

// Registry exposes the recorder's private registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push sends every collected metric to the Pushgateway under job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
