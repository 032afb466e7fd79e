package transfer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-flashcrc/protocol"
)

// MinChunkSize is the smallest maxChunkSize that carries payload: the
// marker, the counter and one byte.
const MinChunkSize = protocol.TransferDataHeaderSize + 1

// Source provides segment payloads by index. *hexfile.Image implements it.
type Source interface {
	// Len returns the number of segments
	Len() int

	// OpenSegment returns a fresh reader over segment i's payload
	OpenSegment(i int) (io.ReadCloser, error)
}

// sizer is implemented by sources that know their segment sizes.
type sizer interface {
	SegmentSize(i int) int64
}

// cursor is the per-segment replay state.
type cursor struct {
	rc      io.ReadCloser
	br      *bufio.Reader
	offset  int64
	seq     byte
	chunks  int
	started time.Time
}

// Reader replays segments as TransferData chunks.
//
// A Reader is not safe for concurrent use; it belongs to one caller.
type Reader struct {
	src     Source
	config  Config
	cursors map[int]*cursor
}

// New creates a Reader over src with the given options.
//
// Example:
//
//	r := transfer.New(img,
//	    transfer.WithLogger(myLogger),
//	    transfer.WithProgressCallback(progressFunc),
//	)
func New(src Source, opts ...Option) *Reader {
	if src == nil {
		panic("source cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Reader{
		src:     src,
		config:  cfg,
		cursors: make(map[int]*cursor),
	}
}

// NextChunk returns the next chunk of segment index: the TransferData
// marker, the sequence counter and up to maxChunkSize-2 payload bytes.
// isLast is true when this chunk exhausts the segment; the following call
// for the same index starts over from the beginning.
func (r *Reader) NextChunk(index, maxChunkSize int) (chunk []byte, isLast bool, err error) {
	if maxChunkSize < MinChunkSize {
		return nil, false, fmt.Errorf("%w: got %d, minimum is %d", ErrChunkSize, maxChunkSize, MinChunkSize)
	}
	if count := r.src.Len(); index < 0 || index >= count {
		return nil, false, &NoSegmentError{Index: index, Count: count}
	}

	cur, err := r.cursor(index)
	if err != nil {
		return nil, false, err
	}

	cur.seq++
	cur.chunks++

	payloadMax := maxChunkSize - protocol.TransferDataHeaderSize
	buf := make([]byte, protocol.TransferDataHeaderSize+payloadMax)
	hdr := protocol.TransferDataHeader(cur.seq)
	copy(buf, hdr[:])

	n, err := io.ReadFull(cur.br, buf[protocol.TransferDataHeaderSize:])
	switch err {
	case nil:
		// A full chunk may still be the last one
		if _, peekErr := cur.br.Peek(1); peekErr == io.EOF {
			isLast = true
		} else if peekErr != nil {
			return nil, false, r.fail(index, "read", peekErr)
		}
	case io.EOF, io.ErrUnexpectedEOF:
		isLast = true
	default:
		return nil, false, r.fail(index, "read", err)
	}

	chunk = buf[:protocol.TransferDataHeaderSize+n]
	if r.config.CorruptPayload {
		for i := protocol.TransferDataHeaderSize; i < len(chunk); i++ {
			chunk[i]++
		}
	}
	cur.offset += int64(n)

	r.reportProgress(index, cur, isLast)

	if isLast {
		r.logDebug("segment exhausted", "segment", index, "bytes", cur.offset, "chunks", cur.chunks)
		r.release(index)
	}
	return chunk, isLast, nil
}

// cursor returns the open cursor for index, opening the payload on first use.
func (r *Reader) cursor(index int) (*cursor, error) {
	if cur, ok := r.cursors[index]; ok {
		return cur, nil
	}

	rc, err := r.src.OpenSegment(index)
	if err != nil {
		r.logError("failed to open segment", "segment", index, "error", err)
		return nil, &ChunkSourceError{Index: index, Op: "open", Err: err}
	}

	cur := &cursor{
		rc:      rc,
		br:      bufio.NewReader(rc),
		started: time.Now(),
	}
	r.cursors[index] = cur
	r.logDebug("segment opened", "segment", index)
	return cur, nil
}

// fail releases the cursor and wraps a read failure.
func (r *Reader) fail(index int, op string, err error) error {
	var offset int64
	if cur, ok := r.cursors[index]; ok {
		offset = cur.offset
	}
	r.logError("failed to read segment", "segment", index, "offset", offset, "error", err)
	r.release(index)
	return &ChunkSourceError{Index: index, Op: op, Offset: offset, Err: err}
}

// release closes and forgets the cursor for index.
func (r *Reader) release(index int) {
	cur, ok := r.cursors[index]
	if !ok {
		return
	}
	delete(r.cursors, index)
	if err := cur.rc.Close(); err != nil {
		r.logError("failed to close segment", "segment", index, "error", err)
	}
}

// Abort discards any partial progress on segment index. The next NextChunk
// call starts from offset zero.
func (r *Reader) Abort(index int) {
	if _, ok := r.cursors[index]; ok {
		r.logInfo("segment transfer aborted", "segment", index)
	}
	r.release(index)
}

// Close releases every open cursor.
func (r *Reader) Close() error {
	for index := range r.cursors {
		r.release(index)
	}
	return nil
}

// Offset returns how many payload bytes of segment index have been
// delivered in the current pass, or 0 if none is in progress.
func (r *Reader) Offset(index int) int64 {
	if cur, ok := r.cursors[index]; ok {
		return cur.offset
	}
	return 0
}

// WriteSegment streams segment index to w, one Write per chunk, until the
// segment is exhausted. Cancellation is checked between chunks; on any
// failure the segment's cursor is released.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
//	defer cancel()
//	err := r.WriteSegment(ctx, conn, 0, 258)
func (r *Reader) WriteSegment(ctx context.Context, w io.Writer, index, maxChunkSize int) error {
	for {
		if err := ctx.Err(); err != nil {
			r.Abort(index)
			return fmt.Errorf("cancelled: %w", err)
		}

		chunk, last, err := r.NextChunk(index, maxChunkSize)
		if err != nil {
			return err
		}

		if _, err := w.Write(chunk); err != nil {
			r.Abort(index)
			return fmt.Errorf("write chunk 0x%02X of segment %d: %w", chunk[1], index, err)
		}

		if last {
			return nil
		}
	}
}

// reportProgress calls the progress callback if configured.
func (r *Reader) reportProgress(index int, cur *cursor, last bool) {
	if r.config.ProgressCallback == nil {
		return
	}

	size := int64(-1)
	percentage := float64(-1)
	if s, ok := r.src.(sizer); ok {
		size = s.SegmentSize(index)
		switch {
		case size > 0:
			percentage = float64(cur.offset) / float64(size) * 100
		case size == 0:
			percentage = 100
		}
	}

	r.config.ProgressCallback(Progress{
		Segment:     index,
		Chunk:       cur.chunks,
		Sequence:    cur.seq,
		Offset:      cur.offset,
		Size:        size,
		Percentage:  percentage,
		Last:        last,
		ElapsedTime: time.Since(cur.started),
	})
}

// logDebug logs a debug message if a logger is configured.
func (r *Reader) logDebug(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (r *Reader) logInfo(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (r *Reader) logError(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Error(msg, keysAndValues...)
	}
}
