package fetcher

import (
	"context"
	"io"
	"net/http"
)

// Outcome tags the result of processing one URL.
type Outcome string

const (
	// OutcomeSaved: a new unique file was written.
	OutcomeSaved Outcome = "saved"
	// OutcomeDuplicate: content hash already seen this run, nothing written.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeRejected: the URL or response failed validation.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed: a network, HTTP or storage error.
	OutcomeFailed Outcome = "failed"
)

// Result is the per-URL outcome of the pipeline.
type Result struct {
	Outcome  Outcome
	URL      string // the URL as given by the user
	Filename string // final stored name, set when Outcome is OutcomeSaved
	Size     int64  // bytes written, set when Outcome is OutcomeSaved
	Checksum string // hex SHA-256, set for OutcomeSaved and OutcomeDuplicate
	Err      *Error // set for OutcomeRejected and OutcomeFailed
}

// Summary aggregates a batch of results.
type Summary struct {
	Saved     int
	Duplicate int
	Rejected  int
	Failed    int
}

// Add counts one result.
func (s *Summary) Add(r Result) {
	switch r.Outcome {
	case OutcomeSaved:
		s.Saved++
	case OutcomeDuplicate:
		s.Duplicate++
	case OutcomeRejected:
		s.Rejected++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of counted results.
func (s *Summary) Total() int {
	return s.Saved + s.Duplicate + s.Rejected + s.Failed
}

// HTTPClient defines the transport the pipeline downloads through.
type HTTPClient interface {
	// Download issues a GET against url and returns the response body and
	// headers. Implementations retry transient transport failures and
	// return a *Error for network and HTTP-status failures.
	Download(ctx context.Context, url string) (io.ReadCloser, http.Header, error)
}
