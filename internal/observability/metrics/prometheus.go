// Package metrics provides Prometheus-compatible metrics collection for the
// image fetcher. Metric names are prefixed with the service name and follow
// Prometheus naming conventions.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the observability.Metrics interface using the
// Prometheus client library.
type PrometheusMetrics struct {
	serviceName string

	// processedTotal tracks processed items by status and operation type
	processedTotal *prometheus.CounterVec
	// errorsTotal tracks errors by error type and operation
	errorsTotal *prometheus.CounterVec
	// durationSeconds tracks operation duration with default buckets
	durationSeconds *prometheus.HistogramVec
	// fileSizeBytes tracks file sizes with exponential buckets
	fileSizeBytes *prometheus.HistogramVec
	// inProgress tracks operations currently in progress
	inProgress *prometheus.GaugeVec
}

// New creates a PrometheusMetrics instance and registers its metrics with
// the default registry. Panics on duplicate registration.
func New(serviceName string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		serviceName: serviceName,
	}

	m.processedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_processed_total", serviceName),
			Help: fmt.Sprintf("Total processed items by %s", serviceName),
		},
		[]string{"status", "type"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_errors_total", serviceName),
			Help: fmt.Sprintf("Total errors in %s", serviceName),
		},
		[]string{"error_type", "operation"},
	)

	m.durationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_duration_seconds", serviceName),
			Help:    fmt.Sprintf("Operation duration in %s", serviceName),
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Buckets: 1KB, 10KB, 100KB, 1MB, 10MB, 100MB, 1GB
	m.fileSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_file_size_bytes", serviceName),
			Help: fmt.Sprintf("File sizes processed by %s", serviceName),
			Buckets: []float64{
				1024,
				10240,
				102400,
				1048576,
				10485760,
				104857600,
				1073741824,
			},
		},
		[]string{"file_type"},
	)

	m.inProgress = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_in_progress", serviceName),
			Help: fmt.Sprintf("Operations in progress in %s", serviceName),
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(
		m.processedTotal,
		m.errorsTotal,
		m.durationSeconds,
		m.fileSizeBytes,
		m.inProgress,
	)

	return m
}

// RecordSuccess increments the success counter for an operation type.
func (m *PrometheusMetrics) RecordSuccess(operationType string) {
	m.processedTotal.WithLabelValues("success", operationType).Inc()
}

// RecordError increments both the processed counter (status="error") and the
// detailed error counter.
func (m *PrometheusMetrics) RecordError(operationType string, errorType string) {
	m.processedTotal.WithLabelValues("error", operationType).Inc()
	m.errorsTotal.WithLabelValues(errorType, operationType).Inc()
}

// RecordDuration records the duration of an operation in seconds.
func (m *PrometheusMetrics) RecordDuration(operation string, duration float64) {
	m.durationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordFileSize records the size of a processed file in bytes.
func (m *PrometheusMetrics) RecordFileSize(fileType string, bytes int64) {
	m.fileSizeBytes.WithLabelValues(fileType).Observe(float64(bytes))
}

// StartOperation increments the in-progress gauge for an operation.
// Must be paired with EndOperation.
func (m *PrometheusMetrics) StartOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Inc()
}

// EndOperation decrements the in-progress gauge for an operation.
func (m *PrometheusMetrics) EndOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Dec()
}
