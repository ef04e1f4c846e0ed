// Package s3 implements storage.ObjectStore on an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/munyokii/Ubuntu-Requests/internal/config"
	"github.com/munyokii/Ubuntu-Requests/internal/observability"
	"github.com/munyokii/Ubuntu-Requests/internal/storage"
)

const maxSuffix = 10000

// Store writes objects into a bucket under an optional key prefix.
type Store struct {
	client  *s3.Client
	cfg     *config.S3Config
	logger  observability.Logger
	metrics observability.Metrics
}

// New creates an S3 store and verifies the bucket is reachable.
func New(ctx context.Context, cfg *config.S3Config, logger observability.Logger, metrics observability.Metrics) (*Store, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: build AWS config: %v", storage.ErrDirectory, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	s := &Store{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}

	headCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		logger.Error(ctx, "Failed to verify bucket", err, observability.Fields{"bucket": cfg.Bucket})
		return nil, fmt.Errorf("%w: bucket %s unreachable: %v", storage.ErrDirectory, cfg.Bucket, err)
	}

	logger.Info(ctx, "S3 store initialized", observability.Fields{
		"bucket": cfg.Bucket,
		"region": cfg.Region,
		"prefix": cfg.Prefix,
	})

	return s, nil
}

// Save uploads content under the requested name, suffixing the name when an
// object with the same key already exists.
func (s *Store) Save(ctx context.Context, name string, content []byte, meta storage.Metadata) (string, error) {
	start := time.Now()
	s.metrics.StartOperation("store")
	defer s.metrics.EndOperation("store")
	defer func() {
		s.metrics.RecordDuration("store", time.Since(start).Seconds())
	}()

	finalName, err := s.uniqueName(ctx, name)
	if err != nil {
		s.metrics.RecordError("store", "write_error")
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(s.key(finalName)),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(meta.ContentType),
		Metadata: map[string]string{
			"source-url": meta.SourceURL,
			"checksum":   meta.Checksum,
		},
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.metrics.RecordError("store", "write_error")
		s.logger.Error(ctx, "Failed to put object", err, observability.Fields{
			"bucket": s.cfg.Bucket,
			"key":    s.key(finalName),
		})
		return "", fmt.Errorf("%w: put %s: %v", storage.ErrWrite, finalName, err)
	}

	s.metrics.RecordSuccess("store")
	s.logger.Info(ctx, "Object stored", observability.Fields{
		"bucket": s.cfg.Bucket,
		"key":    s.key(finalName),
		"bytes":  len(content),
	})

	return finalName, nil
}

// uniqueName probes with HeadObject until a free key variant is found.
func (s *Store) uniqueName(ctx context.Context, name string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		exists, err := s.exists(ctx, s.key(candidate))
		if err != nil {
			return "", fmt.Errorf("%w: head %s: %v", storage.ErrWrite, candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		if i > maxSuffix {
			return "", fmt.Errorf("%w: no free key for %s", storage.ErrWrite, name)
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}

func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) key(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(s.cfg.Prefix, "/") + "/" + name
}

func buildAWSConfig(ctx context.Context, cfg *config.S3Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
