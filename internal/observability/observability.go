// Package observability defines the logging and metrics contracts used
// throughout the fetcher. Implementations live in the logger and metrics
// subpackages; tests use the mocks subpackage.
package observability

import "context"

// Fields holds structured key-value context for a log entry.
type Fields map[string]interface{}

// Logger defines the contract for structured logging. Implementations emit
// JSON-formatted entries; all methods are context-aware so request-scoped
// correlation fields can be carried through.
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields Fields)

	// Error logs an error message with the associated error.
	Error(ctx context.Context, msg string, err error, fields Fields)

	// Warn logs a potentially harmful situation that does not prevent operation.
	Warn(ctx context.Context, msg string, fields Fields)

	// Debug logs detailed information useful during troubleshooting.
	Debug(ctx context.Context, msg string, fields Fields)

	// WithFields returns a new Logger that includes the given fields in
	// every subsequent entry.
	WithFields(fields Fields) Logger
}

// Metrics defines the contract for metrics collection. Implementations
// should follow Prometheus naming conventions.
type Metrics interface {
	// RecordSuccess increments the success counter for an operation type.
	RecordSuccess(operationType string)

	// RecordError increments the error counters for an operation and error type.
	RecordError(operationType string, errorType string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, duration float64)

	// RecordFileSize records the size of a processed file in bytes.
	RecordFileSize(fileType string, bytes int64)

	// StartOperation increments the in-progress gauge for an operation.
	StartOperation(operation string)

	// EndOperation decrements the in-progress gauge for an operation.
	EndOperation(operation string)
}

// NoopMetrics is a Metrics implementation that records nothing.
type NoopMetrics struct{}

func (NoopMetrics) RecordSuccess(string)           {}
func (NoopMetrics) RecordError(string, string)     {}
func (NoopMetrics) RecordDuration(string, float64) {}
func (NoopMetrics) RecordFileSize(string, int64)   {}
func (NoopMetrics) StartOperation(string)          {}
func (NoopMetrics) EndOperation(string)            {}
