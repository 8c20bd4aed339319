// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus counters for the ingestion pipeline.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedsync",
			Name:      "remote_fetch_total",
			Help:      "Total remote spreadsheet API calls",
		},
		[]string{"op"},
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedsync",
			Name:      "remote_fetch_errors_total",
			Help:      "Total failed remote spreadsheet API calls",
		},
		[]string{"op"},
	)

	cacheWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "schedsync",
			Name:      "cache_write_errors_total",
			Help:      "Total failed range cache writes",
		},
	)

	rowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedsync",
			Name:      "rows_dropped_total",
			Help:      "Total schedule rows dropped during normalization",
		},
		[]string{"reason"},
	)

	queueWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "schedsync",
			Name:      "queue_wait_seconds",
			Help:      "Time spent waiting on the remote API dispatch queue",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 1.5, 2, 5, 10},
		},
	)
)

// RecordFetch counts one remote API call for the given operation.
func RecordFetch(op string) {
	fetchTotal.WithLabelValues(op).Inc()
}

// RecordFetchError counts one failed remote API call for the given operation.
func RecordFetchError(op string) {
	fetchErrors.WithLabelValues(op).Inc()
}

// RecordCacheWriteError counts one failed range cache write.
func RecordCacheWriteError() {
	cacheWriteErrors.Inc()
}

// RecordRowDropped counts one dropped schedule row with its drop reason.
func RecordRowDropped(reason string) {
	rowsDropped.WithLabelValues(reason).Inc()
}

// ObserveQueueWait records how long a call waited on the dispatch queue.
func ObserveQueueWait(d time.Duration) {
	queueWait.Observe(d.Seconds())
}

// Snapshot returns the current values of the schedsync metrics keyed by
// metric name, with label dimensions summed and histograms reported by
// sample count. The one-shot CLI logs this before exit so the counters are
// observable without a scrape endpoint.
func Snapshot() map[string]float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil
	}

	out := make(map[string]float64)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "schedsync_") {
			continue
		}
		total := 0.0
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		out[mf.GetName()] = total
	}
	return out
}
