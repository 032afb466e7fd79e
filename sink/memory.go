package sink

import (
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps payloads in memory.
type MemoryStore struct {
	mu       sync.Mutex
	payloads map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{payloads: make(map[string][]byte)}
}

// Create starts a new payload.
func (s *MemoryStore) Create() (Writer, error) {
	return &memoryWriter{store: s, id: newID()}, nil
}

// Open returns a reader over a copy-free view of the payload.
func (s *MemoryStore) Open(id string) (io.ReadCloser, error) {
	s.mu.Lock()
	data, ok := s.payloads[id]
	s.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "open %s", id)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Remove deletes a payload.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	delete(s.payloads, id)
	s.mu.Unlock()
	return nil
}

// Close drops every payload.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.payloads = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

type memoryWriter struct {
	store  *MemoryStore
	id     string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWriter) ID() string {
	return w.id
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.store.mu.Lock()
	w.store.payloads[w.id] = w.buf.Bytes()
	w.store.mu.Unlock()
	return nil
}
