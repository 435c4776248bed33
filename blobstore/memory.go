package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// MemoryStore implements BlobStore backed by an in-memory map. It is used in
// tests and for programmatically supplied corpora.
type MemoryStore struct {
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put stores a blob under the given name, replacing any existing blob.
func (s *MemoryStore) Put(name string, data []byte) {
	s.blobs[name] = data
}

// Open opens a blob for reading.
func (s *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, fmt.Errorf("memory store: %q: %w", name, ErrNotFound)
	}
	return &memoryBlob{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memoryBlob struct {
	*bytes.Reader
	size int64
}

func (b *memoryBlob) Size() int64 { return b.size }

func (b *memoryBlob) Close() error { return nil }

var _ io.ReadCloser = (*memoryBlob)(nil)
