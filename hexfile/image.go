package hexfile

import (
	"fmt"
	"io"

	"github.com/moffa90/go-flashcrc/sink"
)

// SegmentRecordSize is the size of a marshaled Segment.
const SegmentRecordSize = 12

// Segment is a maximal run of contiguous payload bytes.
type Segment struct {
	// Address is the first byte's address
	Address uint32

	// Size is the payload length in bytes
	Size uint32

	// Checksum is the left-justified CRC of the payload
	Checksum uint32

	// Index is the 0-based position in encounter order
	Index int

	sinkID string
}

// End returns the address one past the last byte.
func (s Segment) End() uint32 {
	return s.Address + s.Size
}

// MarshalBinary encodes the segment as address, size and checksum, each 4
// bytes big-endian.
func (s Segment) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SegmentRecordSize)
	PutUint32(buf[0:4], s.Address)
	PutUint32(buf[4:8], s.Size)
	PutUint32(buf[8:12], s.Checksum)
	return buf, nil
}

func (s Segment) String() string {
	return fmt.Sprintf("segment %d: address=0x%08X size=%d crc=0x%08X", s.Index, s.Address, s.Size, s.Checksum)
}

// Image is the result of parsing one firmware file.
type Image struct {
	// Format is the detected encoding
	Format Format

	// Segments are in the order they appear in the file
	Segments []Segment

	// Skipped counts malformed lines that were ignored
	Skipped int

	// Records counts lines that were decoded and applied
	Records int

	// BadChecksums counts applied records whose checksum did not match
	BadChecksums int

	// EntryPoint is the start address from a start or end record
	EntryPoint uint32

	// HasEntryPoint reports whether EntryPoint was present in the file
	HasEntryPoint bool

	// Header holds the S0 record payload, if any
	Header []byte

	store     sink.Store
	ownsStore bool
}

// Len returns the number of segments.
func (img *Image) Len() int {
	return len(img.Segments)
}

// SegmentSize returns the payload size of segment i, or -1 if i is out of
// range.
func (img *Image) SegmentSize(i int) int64 {
	if i < 0 || i >= len(img.Segments) {
		return -1
	}
	return int64(img.Segments[i].Size)
}

// OpenSegment returns a reader over segment i's payload.
func (img *Image) OpenSegment(i int) (io.ReadCloser, error) {
	if i < 0 || i >= len(img.Segments) {
		return nil, fmt.Errorf("segment %d out of range (image has %d)", i, len(img.Segments))
	}
	if img.store == nil {
		return nil, fmt.Errorf("image is closed")
	}
	r, err := img.store.Open(img.Segments[i].sinkID)
	if err != nil {
		return nil, &SinkError{Op: "open", Address: img.Segments[i].Address, Err: err}
	}
	return r, nil
}

// ReadSegment returns segment i's payload.
func (img *Image) ReadSegment(i int) ([]byte, error) {
	r, err := img.OpenSegment(i)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return io.ReadAll(r)
}

// MarshalBinary concatenates the 12-byte record of every segment.
func (img *Image) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(img.Segments)*SegmentRecordSize)
	for _, seg := range img.Segments {
		b, err := seg.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// TotalSize returns the sum of all segment sizes.
func (img *Image) TotalSize() uint64 {
	var total uint64
	for _, seg := range img.Segments {
		total += uint64(seg.Size)
	}
	return total
}

// Close removes every segment payload. A store created by the parser is
// closed as well. Close is safe to call more than once.
func (img *Image) Close() error {
	if img.store == nil {
		return nil
	}
	var firstErr error
	for _, seg := range img.Segments {
		if err := img.store.Remove(seg.sinkID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if img.ownsStore {
		if err := img.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	img.store = nil
	return firstErr
}
