package hexfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moffa90/go-flashcrc/crc"
	"github.com/moffa90/go-flashcrc/sink"
)

// MaxLineLength bounds a single record line. S3 records top out at 516
// characters; the limit leaves room for stray whitespace. Longer lines are
// treated as malformed records.
const MaxLineLength = 4096

// ParseFile parses the image at path.
// A missing or unreadable file yields an error matching ErrImageUnreadable.
//
// Example:
//
//	img, err := hexfile.ParseFile("app.s19", crc.MustNew(crc.CRC32))
//	if errors.Is(err, hexfile.ErrImageUnreadable) {
//	    log.Fatal("cannot read image")
//	}
func ParseFile(path string, engine *crc.Engine, opts ...Option) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImageError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	img, err := Parse(f, engine, opts...)
	if ie, ok := err.(*ImageError); ok {
		ie.Path = path
	}
	return img, err
}

// Parse reads an image from r and returns its segments in encounter order.
// An image with no data records yields zero segments and no error.
func Parse(r io.Reader, engine *crc.Engine, opts ...Option) (*Image, error) {
	if engine == nil {
		return nil, fmt.Errorf("hexfile: nil crc engine")
	}

	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	img := &Image{store: cfg.Store}
	if img.store == nil {
		img.store = sink.NewMemoryStore()
		img.ownsStore = true
	}

	s := &session{
		engine: engine,
		cfg:    cfg,
		img:    img,
	}
	if err := s.run(r); err != nil {
		s.abort()
		return nil, err
	}
	return img, nil
}

// segmentState tracks whether a segment is being accumulated.
type segmentState int

const (
	noSegment segmentState = iota
	inSegment
	finalizing
)

// session holds the transient state of one parse.
type session struct {
	engine *crc.Engine
	cfg    Config
	img    *Image
	gram   grammar

	state segmentState
	base  uint32 // extended segment or linear base address
	start uint32 // first address of the open segment
	next  uint32 // address expected for contiguous data
	w     sink.Writer
}

func (s *session) logDebug(msg string, kv ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, kv...)
	}
}

func (s *session) logInfo(msg string, kv ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, kv...)
	}
}

func (s *session) logError(msg string, kv ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Error(msg, kv...)
	}
}

func (s *session) run(r io.Reader) error {
	br := bufio.NewReaderSize(r, MaxLineLength+2)

	lineNum := 0
	for {
		raw, oversized, err := nextLine(br)
		if err != nil && err != io.EOF {
			return &ImageError{Err: fmt.Errorf("failed to read image: %w", err)}
		}

		if len(raw) > 0 || oversized {
			lineNum++
			done, lineErr := s.handleLine(lineNum, strings.TrimSpace(string(raw)), oversized)
			if lineErr != nil {
				return lineErr
			}
			if done {
				return s.finalize()
			}
		}

		if err == io.EOF {
			break
		}
	}

	if s.gram != nil {
		s.logInfo("image has no end record, closing open segment", "lines", lineNum)
	}
	return s.finalize()
}

// nextLine returns the next line including its terminator. A line that does
// not fit in the reader's buffer is consumed to its end and reported as
// oversized with no content.
func nextLine(br *bufio.Reader) ([]byte, bool, error) {
	line, err := br.ReadSlice('\n')
	if err != bufio.ErrBufferFull {
		return line, false, err
	}
	for err == bufio.ErrBufferFull {
		_, err = br.ReadSlice('\n')
	}
	return nil, true, err
}

// handleLine decodes and applies one line. It reports true once an end
// record has been applied.
func (s *session) handleLine(lineNum int, line string, oversized bool) (bool, error) {
	if oversized {
		err := fmt.Errorf("%w: line exceeds %d characters", ErrRecordLength, MaxLineLength)
		return false, s.malformed(lineNum, err)
	}

	// Skip empty lines
	if line == "" {
		return false, nil
	}

	if s.gram == nil {
		format, err := Detect(line[0])
		if err != nil {
			return false, &ImageError{Err: fmt.Errorf("line %d: %w", lineNum, err)}
		}
		s.img.Format = format
		s.gram = format.grammar()
		s.logDebug("detected image format", "format", format.String())
	}

	rec, err := s.gram.decode(line)
	switch {
	case err == nil:
	case errors.Is(err, ErrRecordChecksum) && !s.cfg.Strict:
		// The record is well formed; keep its bytes so the segment stays whole
		s.img.BadChecksums++
		s.logError("record checksum mismatch, applying record", "line", lineNum, "error", err)
	default:
		return false, s.malformed(lineNum, err)
	}
	s.img.Records++

	return s.apply(rec)
}

// malformed skips a bad line, or fails the parse in strict mode.
func (s *session) malformed(lineNum int, err error) error {
	if s.cfg.Strict {
		return &RecordError{Line: lineNum, Err: err}
	}
	s.img.Skipped++
	s.logError("skipping malformed record", "line", lineNum, "error", err)
	return nil
}

// apply feeds one record into the segment builder. It reports true once an
// end record has been seen.
func (s *session) apply(rec record) (bool, error) {
	switch rec.kind {
	case kindData:
		if len(rec.data) == 0 {
			return false, nil
		}
		addr := s.base + rec.address
		if err := s.onAddress(addr); err != nil {
			return false, err
		}
		if _, err := s.w.Write(rec.data); err != nil {
			return false, &SinkError{Op: "write", Address: s.start, Err: err}
		}
		s.next = addr + uint32(len(rec.data))

	case kindExtendSegment, kindExtendLinear:
		s.base = rec.address
		s.logDebug("base address changed", "kind", rec.kind.String(), "base", fmt.Sprintf("0x%08X", rec.address))

	case kindStart:
		s.setEntryPoint(rec.address)

	case kindHeader:
		s.img.Header = append([]byte(nil), rec.data...)

	case kindCount:
		s.logDebug("record count", "count", rec.address)

	case kindEnd:
		if rec.hasAddr {
			s.setEntryPoint(rec.address)
		}
		return true, nil
	}
	return false, nil
}

func (s *session) setEntryPoint(addr uint32) {
	s.img.EntryPoint = addr
	s.img.HasEntryPoint = true
}

// onAddress starts a new segment unless addr continues the open one.
func (s *session) onAddress(addr uint32) error {
	if s.state == inSegment && addr == s.next {
		return nil
	}
	if err := s.finalize(); err != nil {
		return err
	}

	w, err := s.img.store.Create()
	if err != nil {
		return &SinkError{Op: "create", Address: addr, Err: err}
	}
	s.w = w
	s.start = addr
	s.next = addr
	s.state = inSegment
	return nil
}

// finalize closes the open segment, checksums its payload and records it.
// It is a no-op when no segment is open.
func (s *session) finalize() error {
	if s.state != inSegment {
		return nil
	}
	s.state = finalizing

	w := s.w
	s.w = nil
	if err := w.Close(); err != nil {
		_ = s.img.store.Remove(w.ID())
		return &SinkError{Op: "close", Address: s.start, Err: err}
	}

	seg := Segment{
		Address: s.start,
		Size:    s.next - s.start,
		Index:   len(s.img.Segments),
		sinkID:  w.ID(),
	}
	// Registered before checksumming so abort removes it on failure
	s.img.Segments = append(s.img.Segments, seg)

	sum, err := s.checksum(seg)
	if err != nil {
		return err
	}
	s.img.Segments[seg.Index].Checksum = sum

	s.logInfo("segment finalized",
		"index", seg.Index,
		"address", fmt.Sprintf("0x%08X", seg.Address),
		"size", seg.Size,
		"crc", fmt.Sprintf("0x%08X", sum))

	s.state = noSegment
	return nil
}

// checksum streams a sealed payload back through the engine.
func (s *session) checksum(seg Segment) (uint32, error) {
	r, err := s.img.store.Open(seg.sinkID)
	if err != nil {
		return 0, &SinkError{Op: "open", Address: seg.Address, Err: err}
	}
	defer func() { _ = r.Close() }()

	h := s.engine.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return 0, &SinkError{Op: "read", Address: seg.Address, Err: err}
	}
	if uint32(n) != seg.Size {
		return 0, &SinkError{Op: "read", Address: seg.Address,
			Err: fmt.Errorf("payload has %d bytes, expected %d", n, seg.Size)}
	}
	return h.Sum32(), nil
}

// abort releases every sink created by this parse.
func (s *session) abort() {
	if s.w != nil {
		_ = s.w.Close()
		_ = s.img.store.Remove(s.w.ID())
		s.w = nil
	}
	s.state = noSegment
	_ = s.img.Close()
}
