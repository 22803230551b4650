package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	key := objectKey("invoice-imports", "Export.CSV", now)
	assert.True(t, strings.HasPrefix(key, "invoice-imports/2025/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".csv"), key)

	escaped := objectKey("../../etc", "x.pdf", now)
	assert.True(t, strings.HasPrefix(escaped, "etc/2025/03/"), escaped)
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, size, err := store.Upload(ctx, "invoice-imports", "invoices.csv", "text/csv", bytes.NewBufferString("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	rc, err := store.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(body))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Download(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStorage(t *testing.T) {
	logger := zap.NewNop()

	store, err := NewStorage(&config.StorageConfig{Mode: "none"}, logger)
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = NewStorage(&config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = NewStorage(&config.StorageConfig{Mode: "azure"}, logger)
	assert.Error(t, err)

	_, err = NewStorage(&config.StorageConfig{Mode: "ftp"}, logger)
	assert.Error(t, err)
}
