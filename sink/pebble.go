package sink

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

// DefaultPebbleChunkSize is the value size used when PebbleOptions leaves it
// unset.
const DefaultPebbleChunkSize = 4096

// PebbleOptions configures a PebbleStore.
type PebbleOptions struct {
	// ChunkSize is the payload size stored under each key
	ChunkSize int

	// DB is passed to pebble.Open. Tests use it to select an in-memory FS.
	DB *pebble.Options
}

// PebbleStore keeps payloads in a pebble database as fixed-size chunks
// keyed "<id>/<chunk#>".
type PebbleStore struct {
	db        *pebble.DB
	chunkSize int
	dir       string
	private   bool
}

// NewPebbleStore opens (or creates) a database at dir. An empty dir creates a
// temporary directory that Close removes.
func NewPebbleStore(dir string, opts *PebbleOptions) (*PebbleStore, error) {
	if opts == nil {
		opts = &PebbleOptions{}
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultPebbleChunkSize
	}
	dbOpts := opts.DB
	if dbOpts == nil {
		dbOpts = &pebble.Options{}
	}

	private := false
	if dir == "" && dbOpts.FS == nil {
		tmp, err := os.MkdirTemp("", "flashcrc-pebble-")
		if err != nil {
			return nil, errors.Wrap(err, "failed to create sink directory")
		}
		dir, private = tmp, true
	}

	db, err := pebble.Open(dir, dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open pebble sink at '%s'", dir)
	}
	return &PebbleStore{db: db, chunkSize: chunkSize, dir: dir, private: private}, nil
}

// chunkKey returns the key for chunk n of a payload. The fixed-width
// big-endian suffix keeps chunks in order under pebble's byte comparer.
func chunkKey(id string, n uint32) []byte {
	key := make([]byte, 0, len(id)+5)
	key = append(key, id...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint32(key, n)
}

// keyBounds returns the [lower, upper) range covering all of id's chunks.
func keyBounds(id string) ([]byte, []byte) {
	lower := append([]byte(id), '/')
	upper := append([]byte(id), '/'+1)
	return lower, upper
}

// Create starts a new payload. Chunks are batched and committed on Close.
func (s *PebbleStore) Create() (Writer, error) {
	return &pebbleWriter{store: s, id: newID(), batch: s.db.NewBatch()}, nil
}

// Open loads a payload's chunks in key order.
func (s *PebbleStore) Open(id string) (io.ReadCloser, error) {
	lower, upper := keyBounds(id)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to iterate sink %s", id)
	}
	defer func() { _ = iter.Close() }()

	var buf bytes.Buffer
	found := false
	for iter.First(); iter.Valid(); iter.Next() {
		found = true
		// Values are only valid until the iterator moves
		buf.Write(iter.Value())
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed to read sink %s", id)
	}
	if !found {
		return nil, errors.Wrapf(ErrNotFound, "open %s", id)
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

// Remove deletes every chunk of a payload.
func (s *PebbleStore) Remove(id string) error {
	lower, upper := keyBounds(id)
	return errors.Wrapf(s.db.DeleteRange(lower, upper, pebble.NoSync), "failed to remove sink %s", id)
}

// Close closes the database.
func (s *PebbleStore) Close() error {
	err := s.db.Close()
	if s.private {
		if rmErr := os.RemoveAll(s.dir); err == nil {
			err = rmErr
		}
	}
	return errors.Wrap(err, "failed to close pebble sink")
}

type pebbleWriter struct {
	store   *PebbleStore
	id      string
	batch   *pebble.Batch
	pending []byte
	chunks  uint32
	closed  bool
}

func (w *pebbleWriter) ID() string {
	return w.id
}

func (w *pebbleWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	w.pending = append(w.pending, p...)
	for len(w.pending) >= w.store.chunkSize {
		if err := w.flush(w.store.chunkSize); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (w *pebbleWriter) flush(n int) error {
	if err := w.batch.Set(chunkKey(w.id, w.chunks), w.pending[:n], nil); err != nil {
		return errors.Wrapf(err, "failed to stage chunk %d of %s", w.chunks, w.id)
	}
	w.chunks++
	w.pending = append(w.pending[:0], w.pending[n:]...)
	return nil
}

// Close writes the trailing partial chunk and commits the batch. An empty
// payload is stored as a single empty chunk so it can still be opened.
func (w *pebbleWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	defer func() { _ = w.batch.Close() }()

	if len(w.pending) > 0 || w.chunks == 0 {
		if err := w.flush(len(w.pending)); err != nil {
			return err
		}
	}
	return errors.Wrapf(w.batch.Commit(pebble.NoSync), "failed to commit sink %s", w.id)
}
