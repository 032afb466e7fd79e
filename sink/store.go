package sink

import (
	"io"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when an ID does not name a stored payload.
var ErrNotFound = errors.New("segment sink not found")

// Writer receives one segment's payload. The payload becomes readable
// through Store.Open once Close returns.
type Writer interface {
	io.WriteCloser

	// ID returns the identifier used to reopen or remove the payload
	ID() string
}

// Store creates, reopens and removes segment payloads.
type Store interface {
	// Create starts a new payload
	Create() (Writer, error)

	// Open returns a reader over a closed payload
	Open(id string) (io.ReadCloser, error)

	// Remove deletes a payload. Removing an unknown ID is not an error.
	Remove(id string) error

	// Close releases the store and everything it holds
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendPebble = "pebble"
)

// Open creates a store for a backend name. dir is ignored by the memory
// backend; an empty dir gives the file backend a private temporary directory.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPebble:
		s, err := NewPebbleStore(dir, nil)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Errorf("unknown sink backend %q", backend)
}

func newID() string {
	return ksuid.New().String()
}

var errClosed = errors.New("sink writer already closed")
