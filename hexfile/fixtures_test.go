package hexfile

import (
	"fmt"
	"strings"
	"sync"

	"github.com/moffa90/go-flashcrc/sink"
)

// ihexLine builds an Intel HEX record with a correct checksum.
func ihexLine(addr uint16, recType byte, data []byte) string {
	raw := []byte{byte(len(data)), byte(addr >> 8), byte(addr), recType}
	raw = append(raw, data...)
	raw = append(raw, intelChecksum(raw))
	return fmt.Sprintf(":%X", raw)
}

// srecLine builds an S-record of type t with a correct checksum.
func srecLine(t byte, addr uint32, data []byte) string {
	size := sRecordAddressSize[t]
	raw := []byte{byte(size + len(data) + 1)}
	for i := size - 1; i >= 0; i-- {
		raw = append(raw, byte(addr>>(8*uint(i))))
	}
	raw = append(raw, data...)
	raw = append(raw, sRecordChecksum(raw))
	return fmt.Sprintf("S%c%X", t, raw)
}

// ihexBlock emits data at addr as 16-byte Intel HEX data records.
func ihexBlock(addr uint16, data []byte) []string {
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		lines = append(lines, ihexLine(addr+uint16(off), IntelData, data[off:end]))
	}
	return lines
}

// srecBlock emits data at addr as S3 records of 16 bytes.
func srecBlock(addr uint32, data []byte) []string {
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		lines = append(lines, srecLine('3', addr+uint32(off), data[off:end]))
	}
	return lines
}

func image(lines ...[]string) string {
	var all []string
	for _, l := range lines {
		all = append(all, l...)
	}
	return strings.Join(all, "\n") + "\n"
}

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

// recordingLogger captures log calls.
type recordingLogger struct {
	mu     sync.Mutex
	debug  []string
	info   []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) {
	l.mu.Lock()
	l.debug = append(l.debug, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Info(msg string, kv ...interface{}) {
	l.mu.Lock()
	l.info = append(l.info, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Error(msg string, kv ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, msg)
	l.mu.Unlock()
}

// faultyStore wraps a store and fails the n-th Create or any Write once
// failWrites is set.
type faultyStore struct {
	sink.Store
	failCreateAt int
	creates      int
	failWrites   bool
	removed      []string
}

var errInjected = fmt.Errorf("injected sink failure")

func (s *faultyStore) Create() (sink.Writer, error) {
	s.creates++
	if s.failCreateAt > 0 && s.creates == s.failCreateAt {
		return nil, errInjected
	}
	w, err := s.Store.Create()
	if err != nil {
		return nil, err
	}
	return &faultyWriter{Writer: w, store: s}, nil
}

func (s *faultyStore) Remove(id string) error {
	s.removed = append(s.removed, id)
	return s.Store.Remove(id)
}

type faultyWriter struct {
	sink.Writer
	store *faultyStore
}

func (w *faultyWriter) Write(p []byte) (int, error) {
	if w.store.failWrites {
		return 0, errInjected
	}
	return w.Writer.Write(p)
}
