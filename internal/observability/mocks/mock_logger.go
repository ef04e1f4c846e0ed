package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/munyokii/Ubuntu-Requests/internal/observability"
)

// MockLogger is a mock implementation of observability.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) Error(ctx context.Context, msg string, err error, fields observability.Fields) {
	m.Called(ctx, msg, err, fields)
}

func (m *MockLogger) Warn(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) Debug(ctx context.Context, msg string, fields observability.Fields) {
	m.Called(ctx, msg, fields)
}

func (m *MockLogger) WithFields(fields observability.Fields) observability.Logger {
	args := m.Called(fields)
	if logger, ok := args.Get(0).(observability.Logger); ok {
		return logger
	}
	return m
}
