package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantKind Kind
	}{
		{
			name:     "already absolute",
			input:    "https://example.com/cat.jpg",
			expected: "https://example.com/cat.jpg",
		},
		{
			name:     "plain http kept",
			input:    "http://example.com/cat.jpg",
			expected: "http://example.com/cat.jpg",
		},
		{
			name:     "scheme prepended",
			input:    "example.com/cat.jpg",
			expected: "https://example.com/cat.jpg",
		},
		{
			name:     "host with port",
			input:    "example.com:8080/cat.jpg",
			expected: "https://example.com:8080/cat.jpg",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  example.com/cat.jpg  ",
			expected: "https://example.com/cat.jpg",
		},
		{
			name:     "empty input",
			input:    "",
			wantKind: KindInvalidURL,
		},
		{
			name:     "whitespace only",
			input:    "   ",
			wantKind: KindInvalidURL,
		},
		{
			name:     "unsupported scheme",
			input:    "ftp://example.com/cat.jpg",
			wantKind: KindInvalidURL,
		},
		{
			name:     "no host",
			input:    "https:///cat.jpg",
			wantKind: KindInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantKind != "" {
				require.Error(t, err)
				var ferr *Error
				require.ErrorAs(t, err, &ferr)
				assert.Equal(t, tt.wantKind, ferr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
