// Package metrics provides Prometheus metrics for archive preview builds and
// background extraction.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Build metrics
	buildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arpv_builds_total",
			Help: "Total number of preview tree builds",
		},
		[]string{"format", "status"},
	)

	buildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arpv_build_duration_seconds",
			Help:    "Time to enumerate an archive and build its preview tree",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// Extraction metrics
	tasksQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arpv_extract_tasks_queued",
			Help: "Extraction tasks waiting for a worker",
		},
	)

	tasksRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arpv_extract_tasks_running",
			Help: "Extraction tasks currently running",
		},
	)

	entriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arpv_extract_entries_total",
			Help: "Archive members processed by extraction tasks",
		},
		[]string{"status"},
	)

	bytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arpv_extract_bytes_written_total",
			Help: "Bytes written to the staging directory",
		},
	)

	sourcesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arpv_source_archives_removed_total",
			Help: "Source archives deleted after extraction",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordBuild records one preview build. format may be empty when the
// archive could not be identified.
func RecordBuild(format string, duration time.Duration, success bool) {
	if format == "" {
		format = "unknown"
	}
	status := "success"
	if !success {
		status = "error"
	}
	buildsTotal.WithLabelValues(format, status).Inc()
	buildDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// TaskQueued records a task entering the pool queue.
func TaskQueued() {
	tasksQueued.Inc()
}

// TaskStarted records a queued task being picked up by a worker.
func TaskStarted() {
	tasksQueued.Dec()
	tasksRunning.Inc()
}

// TaskFinished records a running task completing.
func TaskFinished() {
	tasksRunning.Dec()
}

// RecordEntry records one extracted member.
func RecordEntry(bytes int64, success bool) {
	bytesWritten.Add(float64(bytes))
	status := "success"
	if !success {
		status = "error"
	}
	entriesTotal.WithLabelValues(status).Inc()
}

// RecordSourceRemoved records the deletion of a source archive.
func RecordSourceRemoved() {
	sourcesRemoved.Inc()
}
