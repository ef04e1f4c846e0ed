// Package fs implements storage.ObjectStore on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/munyokii/Ubuntu-Requests/internal/observability"
	"github.com/munyokii/Ubuntu-Requests/internal/storage"
)

// maxSuffix bounds the collision-suffix search so a pathological directory
// cannot loop forever.
const maxSuffix = 10000

// Store writes objects into a single target directory.
type Store struct {
	dir     string
	logger  observability.Logger
	metrics observability.Metrics
}

// New creates a filesystem store rooted at dir, creating the directory
// (including parents) if missing.
func New(dir string, logger observability.Logger, metrics observability.Metrics) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", storage.ErrDirectory, dir, err)
	}

	return &Store{
		dir:     dir,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Dir returns the target directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes content under name inside the store directory. An existing
// file of the same name is never overwritten; the name gets a numeric
// suffix instead (image.jpg, image_1.jpg, ...).
func (s *Store) Save(ctx context.Context, name string, content []byte, meta storage.Metadata) (string, error) {
	start := time.Now()
	s.metrics.StartOperation("store")
	defer s.metrics.EndOperation("store")
	defer func() {
		s.metrics.RecordDuration("store", time.Since(start).Seconds())
	}()

	// The directory may have been removed mid-run.
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.metrics.RecordError("store", "directory_error")
		return "", fmt.Errorf("%w: create %s: %v", storage.ErrDirectory, s.dir, err)
	}

	finalName, file, err := s.createUnique(name)
	if err != nil {
		s.metrics.RecordError("store", "write_error")
		s.logger.Error(ctx, "Failed to create file", err, observability.Fields{
			"name": name,
			"dir":  s.dir,
		})
		return "", err
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(filepath.Join(s.dir, finalName))
		s.metrics.RecordError("store", "write_error")
		s.logger.Error(ctx, "Failed to write file", err, observability.Fields{
			"name": finalName,
			"dir":  s.dir,
		})
		return "", fmt.Errorf("%w: write %s: %v", storage.ErrWrite, finalName, err)
	}

	if err := file.Close(); err != nil {
		s.metrics.RecordError("store", "write_error")
		return "", fmt.Errorf("%w: close %s: %v", storage.ErrWrite, finalName, err)
	}

	s.metrics.RecordSuccess("store")
	s.logger.Info(ctx, "File stored", observability.Fields{
		"name":         finalName,
		"bytes":        len(content),
		"content_type": meta.ContentType,
		"checksum":     meta.Checksum,
	})

	return finalName, nil
}

// createUnique opens a new file under the first free variant of name.
// O_EXCL makes the existence check and the create a single step.
func (s *Store) createUnique(name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		path := filepath.Join(s.dir, candidate)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return candidate, file, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("%w: create %s: %v", storage.ErrWrite, candidate, err)
		}
		if i > maxSuffix {
			return "", nil, fmt.Errorf("%w: no free name for %s", storage.ErrWrite, name)
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}
