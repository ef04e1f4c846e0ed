package fetcher

import "fmt"

// Kind classifies pipeline failures.
type Kind string

const (
	KindInvalidURL      Kind = "invalid_url"
	KindNetwork         Kind = "network_error"
	KindHTTP            Kind = "http_error"
	KindUnsupportedType Kind = "unsupported_type"
	KindTooLarge        Kind = "too_large"
	KindWrite           Kind = "write_error"
	KindDirectory       Kind = "directory_error"
)

// Error is the pipeline's failure type. Every failed or rejected download
// surfaces exactly one of these; the message is a single human-readable
// line without internal diagnostics.
type Error struct {
	Kind   Kind
	URL    string
	Status int    // HTTP status, set for KindHTTP
	Detail string // extra context, e.g. the offending content type
	Err    error  // wrapped cause
}

func (e *Error) Error() string {
	msg := e.reason()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient. Only network-level
// failures qualify; HTTP rejections and validation failures do not.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork
}

func (e *Error) reason() string {
	switch e.Kind {
	case KindInvalidURL:
		return "invalid URL"
	case KindNetwork:
		return "network error"
	case KindHTTP:
		return fmt.Sprintf("HTTP status %d", e.Status)
	case KindUnsupportedType:
		return "unsupported content type"
	case KindTooLarge:
		return "content exceeds size limit"
	case KindWrite:
		return "write failed"
	case KindDirectory:
		return "output directory unavailable"
	default:
		return string(e.Kind)
	}
}

// NewInvalidURL reports a URL that could not be normalized.
func NewInvalidURL(url string, err error) *Error {
	return &Error{Kind: KindInvalidURL, URL: url, Err: err}
}

// NewNetworkError reports a transport failure after retries were exhausted.
func NewNetworkError(url string, err error) *Error {
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}

// NewHTTPError reports a non-2xx response.
func NewHTTPError(url string, status int) *Error {
	return &Error{Kind: KindHTTP, URL: url, Status: status}
}

// NewUnsupportedType reports a content type outside the allow-list.
func NewUnsupportedType(url, contentType string) *Error {
	return &Error{Kind: KindUnsupportedType, URL: url, Detail: contentType}
}

// NewTooLarge reports content above the configured size ceiling.
func NewTooLarge(url string, limit int64) *Error {
	return &Error{Kind: KindTooLarge, URL: url, Detail: fmt.Sprintf("limit %d bytes", limit)}
}

// NewWriteError reports a storage write failure.
func NewWriteError(url string, err error) *Error {
	return &Error{Kind: KindWrite, URL: url, Err: err}
}

// NewDirectoryError reports an unusable storage location.
func NewDirectoryError(url string, err error) *Error {
	return &Error{Kind: KindDirectory, URL: url, Err: err}
}
