package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/munyokii/Ubuntu-Requests/internal/fetcher"
)

func TestSplitInput(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"single url", "https://a.com/1.png", []string{"https://a.com/1.png"}},
		{"comma separated", "a.com/1.png,b.com/2.png", []string{"a.com/1.png", "b.com/2.png"}},
		{"comma with spaces", "a.com/1.png, b.com/2.png", []string{"a.com/1.png", "b.com/2.png"}},
		{"whitespace separated", "a.com/1.png  b.com/2.png", []string{"a.com/1.png", "b.com/2.png"}},
		{"trailing comma", "a.com/1.png,", []string{"a.com/1.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitInput(tt.line))
		})
	}
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		name     string
		result   fetcher.Result
		expected string
	}{
		{
			name: "saved",
			result: fetcher.Result{
				Outcome:  fetcher.OutcomeSaved,
				Filename: "cat.png",
				Size:     1234,
			},
			expected: "Saved as cat.png (1234 bytes)\n",
		},
		{
			name: "duplicate",
			result: fetcher.Result{
				Outcome:  fetcher.OutcomeDuplicate,
				Checksum: "1f3870be274f6c49b3e31a0c6728957f034b",
			},
			expected: "Skipped: duplicate of 1f3870be274f\n",
		},
		{
			name: "failed",
			result: fetcher.Result{
				Outcome: fetcher.OutcomeFailed,
				URL:     "https://a.com/x.png",
				Err:     fetcher.NewHTTPError("https://a.com/x.png", 404),
			},
			expected: "Error: https://a.com/x.png: HTTP status 404\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printResult(&buf, tt.result)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, fetcher.Summary{Saved: 3, Duplicate: 1, Failed: 2})
	assert.Equal(t, "Done: 3 saved, 1 duplicate, 0 rejected, 2 failed\n", buf.String())
}
