// Package fetcher implements the download pipeline: normalize the URL,
// fetch with bounded retries, validate content type and size, hash and
// deduplicate, then persist under a derived name.
package fetcher

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/munyokii/Ubuntu-Requests/internal/observability"
	"github.com/munyokii/Ubuntu-Requests/internal/storage"
)

// Config holds the pipeline's validation settings.
type Config struct {
	// MaxBytes is the size ceiling; responses above it are rejected,
	// aborting the transfer as soon as the ceiling is crossed.
	MaxBytes int64
	// AllowedTypePrefixes is the content-type allow-list (e.g. "image/").
	AllowedTypePrefixes []string
}

// Pipeline processes URLs one at a time. State shared across calls (the
// hash set, the synthesized-name counter) is owned by the instance, so
// independent pipelines do not interfere.
type Pipeline struct {
	client   HTTPClient
	store    storage.ObjectStore
	cfg      Config
	seen     *HashSet
	counter  int
	progress io.Writer
	logger   observability.Logger
	metrics  observability.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress draws a progress bar on w while a body is streaming.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) {
		p.progress = w
	}
}

// New creates a pipeline with an empty hash set.
func New(client HTTPClient, store storage.ObjectStore, cfg Config, logger observability.Logger, metrics observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:  client,
		store:   store,
		cfg:     cfg,
		seen:    NewHashSet(),
		logger:  logger,
		metrics: metrics,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process runs the full pipeline for one URL. All failures are returned in
// the Result; the error never aborts a batch.
func (p *Pipeline) Process(ctx context.Context, rawURL string) Result {
	start := time.Now()
	p.metrics.StartOperation("download")
	defer p.metrics.EndOperation("download")
	defer func() {
		p.metrics.RecordDuration("download", time.Since(start).Seconds())
	}()

	logger := p.logger.WithFields(observability.Fields{
		"request_id": uuid.NewString()[:8],
		"url":        rawURL,
	})
	logger.Info(ctx, "Starting download", nil)

	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return p.fail(ctx, logger, rawURL, err)
	}

	body, headers, err := p.client.Download(ctx, normalized)
	if err != nil {
		return p.fail(ctx, logger, rawURL, err)
	}
	defer body.Close()

	contentType := normalizeContentType(headers.Get("Content-Type"))
	if !p.typeAllowed(contentType) {
		return p.fail(ctx, logger, rawURL, NewUnsupportedType(rawURL, contentType))
	}

	// Reject on the declared length before reading anything.
	if declared, parseErr := strconv.ParseInt(headers.Get("Content-Length"), 10, 64); parseErr == nil && declared > p.cfg.MaxBytes {
		return p.fail(ctx, logger, rawURL, NewTooLarge(rawURL, p.cfg.MaxBytes))
	}

	content, checksum, err := p.readBody(body, headers)
	if err != nil {
		return p.fail(ctx, logger, rawURL, err)
	}

	if p.seen.Contains(checksum) {
		logger.Info(ctx, "Duplicate content skipped", observability.Fields{
			"checksum": checksum,
		})
		p.metrics.RecordSuccess("dedupe")
		return Result{Outcome: OutcomeDuplicate, URL: rawURL, Checksum: checksum}
	}

	name := filenameFromURL(normalized)
	if name == "" {
		p.counter++
		name = synthesizeFilename(contentType, p.counter)
	}

	finalName, err := p.store.Save(ctx, name, content, storage.Metadata{
		ContentType: contentType,
		SourceURL:   normalized,
		Checksum:    checksum,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDirectory) {
			return p.fail(ctx, logger, rawURL, NewDirectoryError(rawURL, err))
		}
		return p.fail(ctx, logger, rawURL, NewWriteError(rawURL, err))
	}

	// The hash enters the set only once its file is on disk.
	p.seen.Add(checksum)

	size := int64(len(content))
	p.metrics.RecordSuccess("download")
	p.metrics.RecordFileSize(contentType, size)
	logger.Info(ctx, "Download saved", observability.Fields{
		"filename":     finalName,
		"bytes":        size,
		"content_type": contentType,
		"checksum":     checksum,
	})

	return Result{
		Outcome:  OutcomeSaved,
		URL:      rawURL,
		Filename: finalName,
		Size:     size,
		Checksum: checksum,
	}
}

// ProcessBatch processes URLs sequentially, best effort: one URL's failure
// never stops the rest.
func (p *Pipeline) ProcessBatch(ctx context.Context, urls []string) ([]Result, Summary) {
	results := make([]Result, 0, len(urls))
	var summary Summary

	for _, u := range urls {
		r := p.Process(ctx, u)
		summary.Add(r)
		results = append(results, r)
	}

	return results, summary
}

// readBody streams the body through the hasher into memory, enforcing the
// size ceiling incrementally: at most MaxBytes+1 bytes are ever read, so an
// oversized response aborts without downloading the rest.
func (p *Pipeline) readBody(body io.Reader, headers http.Header) ([]byte, string, error) {
	reader := body
	if p.progress != nil {
		bar := p.newProgressBar(headers)
		defer bar.Close()
		reader = io.TeeReader(body, bar)
	}

	hasher := sha256.New()
	var buf bytes.Buffer

	limited := io.LimitReader(reader, p.cfg.MaxBytes+1)
	n, err := io.Copy(io.MultiWriter(&buf, hasher), limited)
	if err != nil {
		return nil, "", NewNetworkError("", err)
	}
	if n > p.cfg.MaxBytes {
		return nil, "", NewTooLarge("", p.cfg.MaxBytes)
	}

	return buf.Bytes(), hex.EncodeToString(hasher.Sum(nil)), nil
}

func (p *Pipeline) newProgressBar(headers http.Header) *progressbar.ProgressBar {
	var total int64 = -1
	if declared, err := strconv.ParseInt(headers.Get("Content-Length"), 10, 64); err == nil {
		total = declared
	}

	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *Pipeline) typeAllowed(contentType string) bool {
	for _, prefix := range p.cfg.AllowedTypePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// fail records and classifies one failed URL. Validation failures are
// rejections; transport, HTTP and storage failures are failures.
func (p *Pipeline) fail(ctx context.Context, logger observability.Logger, rawURL string, err error) Result {
	var ferr *Error
	if !errors.As(err, &ferr) {
		ferr = NewNetworkError(rawURL, err)
	}
	if ferr.URL == "" {
		ferr.URL = rawURL
	}

	p.metrics.RecordError("download", string(ferr.Kind))
	logger.Error(ctx, "Download failed", ferr, observability.Fields{
		"error_type": string(ferr.Kind),
	})

	outcome := OutcomeFailed
	switch ferr.Kind {
	case KindInvalidURL, KindUnsupportedType, KindTooLarge:
		outcome = OutcomeRejected
	}

	return Result{Outcome: outcome, URL: rawURL, Err: ferr}
}
