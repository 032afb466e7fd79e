package hexfile

import (
	"errors"
	"fmt"
)

var (
	// ErrImageUnreadable is matched by every error that prevents an image
	// from being read at all.
	ErrImageUnreadable = errors.New("image unreadable")

	// ErrUnknownFormat means the first significant character names neither
	// Intel HEX nor S-record.
	ErrUnknownFormat = errors.New("unknown image format")

	// ErrRecordChecksum means a record's checksum byte does not match.
	ErrRecordChecksum = errors.New("record checksum mismatch")

	// ErrRecordLength means a record's length field disagrees with the line.
	ErrRecordLength = errors.New("record length mismatch")

	// ErrRecordType means the record type is not part of the format.
	ErrRecordType = errors.New("unknown record type")
)

// ImageError indicates the image could not be opened or read.
type ImageError struct {
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("image unreadable: %v", e.Err)
	}
	return fmt.Sprintf("image %s unreadable: %v", e.Path, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// Is makes every ImageError match ErrImageUnreadable.
func (e *ImageError) Is(target error) bool {
	return target == ErrImageUnreadable
}

// RecordError reports a malformed line in strict mode.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// SinkError indicates a segment payload could not be stored or read back.
type SinkError struct {
	// Op is the failing sink operation (create, write, close, open or read)
	Op string

	// Address is the start address of the affected segment
	Address uint32

	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("segment sink %s failed for segment at 0x%08X: %v", e.Op, e.Address, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsSinkError returns true if the error is a SinkError.
func IsSinkError(err error) bool {
	var se *SinkError
	return errors.As(err, &se)
}
