package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	s.Put("a.pgm", []byte("P2"))

	blob, err := s.Open(context.Background(), "a.pgm")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(2), blob.Size())
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "P2", string(data))
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img.pgm"), []byte("P2 1 1"), 0o644))

	s := NewLocalStore(dir)
	blob, err := s.Open(context.Background(), "img.pgm")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(6), blob.Size())
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "P2 1 1", string(data))
}

func TestLocalStoreNotFound(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Open(context.Background(), "missing.pgm")
	assert.ErrorIs(t, err, ErrNotFound)
}
