package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSegment is matched by NoSegmentError.
	ErrNoSegment = errors.New("no such segment")

	// ErrChunkSource is matched by ChunkSourceError.
	ErrChunkSource = errors.New("segment payload unavailable")

	// ErrChunkSize is returned when maxChunkSize leaves no room for payload.
	ErrChunkSize = errors.New("chunk size too small")
)

// NoSegmentError indicates that a segment index is out of range.
type NoSegmentError struct {
	Index int
	Count int
}

func (e *NoSegmentError) Error() string {
	return fmt.Sprintf("segment %d does not exist: image has %d segments", e.Index, e.Count)
}

// Is makes NoSegmentError match ErrNoSegment.
func (e *NoSegmentError) Is(target error) bool {
	return target == ErrNoSegment
}

// ChunkSourceError indicates that a segment's payload could not be reopened
// or read. The segment's cursor has been released when this is returned.
type ChunkSourceError struct {
	// Index is the segment index
	Index int

	// Op is "open" or "read"
	Op string

	// Offset is the payload offset reached before the failure
	Offset int64

	Err error
}

func (e *ChunkSourceError) Error() string {
	return fmt.Sprintf("segment %d: %s payload at offset %d: %v", e.Index, e.Op, e.Offset, e.Err)
}

func (e *ChunkSourceError) Unwrap() error {
	return e.Err
}

// Is makes ChunkSourceError match ErrChunkSource.
func (e *ChunkSourceError) Is(target error) bool {
	return target == ErrChunkSource
}
