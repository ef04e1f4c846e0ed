package mocks

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a mock implementation of fetcher.HTTPClient
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Download(ctx context.Context, url string) (io.ReadCloser, http.Header, error) {
	args := m.Called(ctx, url)

	var reader io.ReadCloser
	if args.Get(0) != nil {
		reader = args.Get(0).(io.ReadCloser)
	}

	var headers http.Header
	if args.Get(1) != nil {
		headers = args.Get(1).(http.Header)
	}

	return reader, headers, args.Error(2)
}
