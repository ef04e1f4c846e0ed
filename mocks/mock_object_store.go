package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/munyokii/Ubuntu-Requests/internal/storage"
)

// MockObjectStore is a mock implementation of storage.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Save(ctx context.Context, name string, content []byte, meta storage.Metadata) (string, error) {
	args := m.Called(ctx, name, content, meta)
	return args.String(0), args.Error(1)
}
