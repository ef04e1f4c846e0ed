// Command imagefetcher downloads images from URLs into a local directory
// (or an S3 bucket), skipping byte-identical duplicates within a run.
//
// With URL arguments it runs one best-effort batch and exits; without
// arguments it prompts for URLs interactively. Exit code is 0 even when
// individual downloads fail; only an unusable storage setup is fatal.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/munyokii/Ubuntu-Requests/internal/adapters/http"
	"github.com/munyokii/Ubuntu-Requests/internal/config"
	"github.com/munyokii/Ubuntu-Requests/internal/fetcher"
	"github.com/munyokii/Ubuntu-Requests/internal/observability"
	"github.com/munyokii/Ubuntu-Requests/internal/observability/logger"
	"github.com/munyokii/Ubuntu-Requests/internal/observability/metrics"
	"github.com/munyokii/Ubuntu-Requests/internal/storage"
	fsstore "github.com/munyokii/Ubuntu-Requests/internal/storage/fs"
	s3store "github.com/munyokii/Ubuntu-Requests/internal/storage/s3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		dir        string
		timeout    time.Duration
		retries    int
		maxBytes   int64
		verbose    bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "imagefetcher [urls...]",
		Short: "imagefetcher - fetch images from the web, deduplicated by content",
		Args:  cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override env and defaults.
			if dir != "" {
				cfg.Storage.Backend = "fs"
				cfg.Storage.OutputDir = dir
			}
			if timeout > 0 {
				cfg.HTTP.Timeout = timeout
			}
			if retries > 0 {
				cfg.HTTP.MaxAttempts = retries
			}
			if maxBytes > 0 {
				cfg.Fetch.MaxBytes = maxBytes
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			pipeline, err := buildPipeline(c.Context(), cfg, !noProgress)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if len(args) > 0 {
				summary := processAndPrint(c.Context(), pipeline, args, out)
				printSummary(out, summary)
				return nil
			}

			return runInteractive(c.Context(), pipeline, out)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (implies the fs backend)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout, e.g. 10s")
	cmd.Flags().IntVar(&retries, "retries", 0, "attempts per URL for transient failures")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "size ceiling in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the download progress bar")

	return cmd
}

func buildPipeline(ctx context.Context, cfg *config.Config, progress bool) (*fetcher.Pipeline, error) {
	log := logger.New(cfg.ServiceName, cfg.LogLevel, os.Stderr)
	m := metrics.New(cfg.ServiceName)

	store, err := buildStore(ctx, cfg, log, m)
	if err != nil {
		return nil, err
	}

	client := http.NewClient(http.ClientConfig{
		Timeout:     cfg.HTTP.Timeout,
		MaxAttempts: cfg.HTTP.MaxAttempts,
		RetryDelay:  cfg.HTTP.RetryDelay,
		UserAgent:   cfg.HTTP.UserAgent,
	}, log.WithFields(observability.Fields{"component": "http_client"}))

	var opts []fetcher.Option
	if progress {
		opts = append(opts, fetcher.WithProgress(os.Stderr))
	}

	return fetcher.New(
		client,
		store,
		fetcher.Config{
			MaxBytes:            cfg.Fetch.MaxBytes,
			AllowedTypePrefixes: cfg.Fetch.AllowedTypePrefixes,
		},
		log.WithFields(observability.Fields{"component": "pipeline"}),
		m,
		opts...,
	), nil
}

func buildStore(ctx context.Context, cfg *config.Config, log observability.Logger, m observability.Metrics) (storage.ObjectStore, error) {
	scoped := log.WithFields(observability.Fields{"component": "storage"})

	switch cfg.Storage.Backend {
	case "s3":
		return s3store.New(ctx, &cfg.Storage.S3, scoped, m)
	default:
		return fsstore.New(cfg.Storage.OutputDir, scoped, m)
	}
}

// processAndPrint runs the pipeline over urls sequentially, printing one
// line per result.
func processAndPrint(ctx context.Context, pipeline *fetcher.Pipeline, urls []string, out io.Writer) fetcher.Summary {
	var summary fetcher.Summary

	for _, u := range urls {
		r := pipeline.Process(ctx, u)
		summary.Add(r)
		printResult(out, r)
	}

	return summary
}

func printResult(out io.Writer, r fetcher.Result) {
	switch r.Outcome {
	case fetcher.OutcomeSaved:
		fmt.Fprintf(out, "Saved as %s (%d bytes)\n", r.Filename, r.Size)
	case fetcher.OutcomeDuplicate:
		fmt.Fprintf(out, "Skipped: duplicate of %s\n", hashPrefix(r.Checksum))
	default:
		fmt.Fprintf(out, "Error: %s: %s\n", r.URL, r.Err)
	}
}

func hashPrefix(checksum string) string {
	if len(checksum) > 12 {
		return checksum[:12]
	}
	return checksum
}

// runInteractive prompts for URLs until EOF or an exit word. Each line may
// hold one URL or a comma-separated batch.
func runInteractive(ctx context.Context, pipeline *fetcher.Pipeline, out io.Writer) error {
	fmt.Fprintln(out, "Enter image URLs (comma-separated for a batch). Empty line or 'quit' exits.")

	var total fetcher.Summary
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "quit" || line == "exit" {
			break
		}

		summary := processAndPrint(ctx, pipeline, splitInput(line), out)
		total.Saved += summary.Saved
		total.Duplicate += summary.Duplicate
		total.Rejected += summary.Rejected
		total.Failed += summary.Failed
	}

	if total.Total() > 0 {
		printSummary(out, total)
	}
	return scanner.Err()
}

// splitInput breaks a line of user input into URLs on commas and whitespace.
func splitInput(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	urls := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			urls = append(urls, f)
		}
	}
	return urls
}

func printSummary(out io.Writer, s fetcher.Summary) {
	fmt.Fprintf(out, "Done: %d saved, %d duplicate, %d rejected, %d failed\n",
		s.Saved, s.Duplicate, s.Rejected, s.Failed)
}
