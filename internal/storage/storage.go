// Package storage defines the object storage contract the fetch pipeline
// writes through. Adapters live in the fs and s3 subpackages.
package storage

import (
	"context"
	"errors"
)

// Sentinel errors adapters wrap so callers can classify failures with
// errors.Is regardless of backend.
var (
	// ErrDirectory indicates the target location could not be created or
	// reached (missing bucket, permission denial on mkdir).
	ErrDirectory = errors.New("storage location unavailable")

	// ErrWrite indicates the object itself could not be written.
	ErrWrite = errors.New("storage write failed")
)

// Metadata carries descriptive information stored alongside an object where
// the backend supports it.
type Metadata struct {
	ContentType string
	SourceURL   string
	Checksum    string
}

// ObjectStore persists downloaded content.
type ObjectStore interface {
	// Save writes content under the requested name. If an object of that
	// name already exists the name is disambiguated with a numeric suffix
	// rather than overwritten. Returns the final name used.
	Save(ctx context.Context, name string, content []byte, meta Metadata) (string, error)
}
