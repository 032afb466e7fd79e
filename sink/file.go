package sink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// fileSuffix is appended to every payload file name.
const fileSuffix = ".seg"

// FileStore keeps one file per payload in a directory.
type FileStore struct {
	dir     string
	private bool
}

// NewFileStore returns a store rooted at dir, creating it if needed. An empty
// dir creates a temporary directory that Close removes.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "flashcrc-sinks-")
		if err != nil {
			return nil, errors.Wrap(err, "failed to create sink directory")
		}
		return &FileStore{dir: tmp, private: true}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create sink directory '%s'", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the payload files.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+fileSuffix)
}

// Create opens a new payload file.
func (s *FileStore) Create() (Writer, error) {
	id := newID()
	f, err := os.Create(s.path(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sink file")
	}
	return &fileWriter{File: f, id: id}, nil
}

// Open reopens a payload file for reading.
func (s *FileStore) Open(id string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "open %s", id)
		}
		return nil, errors.Wrapf(err, "failed to open sink file for %s", id)
	}
	return f, nil
}

// Remove deletes a payload file.
func (s *FileStore) Remove(id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove sink file for %s", id)
	}
	return nil
}

// Close removes the directory if the store created it.
func (s *FileStore) Close() error {
	if !s.private {
		return nil
	}
	return errors.Wrap(os.RemoveAll(s.dir), "failed to remove sink directory")
}

type fileWriter struct {
	*os.File
	id string
}

func (w *fileWriter) ID() string {
	return w.id
}
