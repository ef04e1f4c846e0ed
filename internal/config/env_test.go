package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue string
		expected     string
	}{
		{
			name:         "environment variable set",
			key:          "TEST_ENV_VAR",
			envValue:     "test_value",
			defaultValue: "default",
			expected:     "test_value",
		},
		{
			name:         "environment variable not set",
			key:          "UNSET_VAR",
			envValue:     "",
			defaultValue: "default",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			result := GetEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue int
		expected     int
	}{
		{
			name:         "valid integer",
			key:          "TEST_INT",
			envValue:     "42",
			defaultValue: 10,
			expected:     42,
		},
		{
			name:         "negative integer",
			key:          "TEST_NEG_INT",
			envValue:     "-100",
			defaultValue: 10,
			expected:     -100,
		},
		{
			name:         "invalid integer returns default",
			key:          "TEST_BAD_INT",
			envValue:     "not-a-number",
			defaultValue: 10,
			expected:     10,
		},
		{
			name:         "unset returns default",
			key:          "TEST_UNSET_INT",
			envValue:     "",
			defaultValue: 7,
			expected:     7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			result := GetEnvInt(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "5368709120")
	assert.Equal(t, int64(5368709120), GetEnvInt64("TEST_INT64", 1))

	os.Unsetenv("TEST_INT64_UNSET")
	assert.Equal(t, int64(99), GetEnvInt64("TEST_INT64_UNSET", 99))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, GetEnvBool("TEST_BOOL", false))

	t.Setenv("TEST_BOOL", "0")
	assert.False(t, GetEnvBool("TEST_BOOL", true))

	t.Setenv("TEST_BOOL", "yes")
	assert.True(t, GetEnvBool("TEST_BOOL", true))

	os.Unsetenv("TEST_BOOL_UNSET")
	assert.False(t, GetEnvBool("TEST_BOOL_UNSET", false))
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		envValue     string
		defaultValue string
		expected     time.Duration
	}{
		{
			name:         "valid duration",
			key:          "TEST_DURATION",
			envValue:     "45s",
			defaultValue: "30s",
			expected:     45 * time.Second,
		},
		{
			name:         "invalid duration falls back to default",
			key:          "TEST_BAD_DURATION",
			envValue:     "soon",
			defaultValue: "2m",
			expected:     2 * time.Minute,
		},
		{
			name:         "unset uses default",
			key:          "TEST_UNSET_DURATION",
			envValue:     "",
			defaultValue: "500ms",
			expected:     500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			result := GetEnvDuration(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}
