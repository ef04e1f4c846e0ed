package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/munyokii/Ubuntu-Requests/internal/observability"
	"github.com/munyokii/Ubuntu-Requests/internal/observability/logger"
	obsmocks "github.com/munyokii/Ubuntu-Requests/internal/observability/mocks"
	"github.com/munyokii/Ubuntu-Requests/internal/storage"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "images")
	store, err := New(dir, logger.New("test", "error", nil), observability.NoopMetrics{})
	require.NoError(t, err)
	return store, dir
}

func TestNewCreatesDirectory(t *testing.T) {
	_, dir := newTestStore(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSaveWritesContent(t *testing.T) {
	store, dir := newTestStore(t)

	name, err := store.Save(context.Background(), "cat.png", []byte("png-bytes"), storage.Metadata{
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "cat.png", name)

	data, err := os.ReadFile(filepath.Join(dir, "cat.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveDisambiguatesCollisions(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "image.jpg", []byte("first"), storage.Metadata{})
	require.NoError(t, err)
	second, err := store.Save(ctx, "image.jpg", []byte("second"), storage.Metadata{})
	require.NoError(t, err)
	third, err := store.Save(ctx, "image.jpg", []byte("third"), storage.Metadata{})
	require.NoError(t, err)

	assert.Equal(t, "image.jpg", first)
	assert.Equal(t, "image_1.jpg", second)
	assert.Equal(t, "image_2.jpg", third)

	// Both collision variants hold their own, distinct content.
	data1, err := os.ReadFile(filepath.Join(dir, "image.jpg"))
	require.NoError(t, err)
	data2, err := os.ReadFile(filepath.Join(dir, "image_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data1))
	assert.Equal(t, "second", string(data2))
}

func TestSaveRecreatesRemovedDirectory(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, os.RemoveAll(dir))

	name, err := store.Save(context.Background(), "dog.gif", []byte("gif"), storage.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, "dog.gif", name)
}

func TestSaveRecordsMetrics(t *testing.T) {
	metrics := &obsmocks.MockMetrics{}
	metrics.On("StartOperation", "store").Once()
	metrics.On("EndOperation", "store").Once()
	metrics.On("RecordDuration", "store", mock.AnythingOfType("float64")).Once()
	metrics.On("RecordSuccess", "store").Once()

	log := &obsmocks.MockLogger{}
	log.On("Info", mock.Anything, "File stored", mock.Anything).Once()

	dir := filepath.Join(t.TempDir(), "images")
	store, err := New(dir, log, metrics)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "cat.png", []byte("png"), storage.Metadata{})
	require.NoError(t, err)

	metrics.AssertExpectations(t)
	log.AssertExpectations(t)
}

func TestNewFailsOnUnusablePath(t *testing.T) {
	// A regular file where the directory should go.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := New(filepath.Join(blocker, "images"), logger.New("test", "error", nil), observability.NoopMetrics{})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrDirectory)
}
