package transfer

import "time"

// Progress contains information about one served chunk.
// Passed to ProgressCallback after every NextChunk call that succeeds.
type Progress struct {
	// Segment is the segment index
	Segment int

	// Chunk is the 1-based number of the chunk within this pass
	Chunk int

	// Sequence is the counter byte carried by the chunk
	Sequence byte

	// Offset is the number of payload bytes delivered so far
	Offset int64

	// Size is the segment size, or -1 if the source does not report it
	Size int64

	// Percentage is the completion percentage (0.0 to 100.0), or -1 when
	// Size is unknown
	Percentage float64

	// Last is set on the chunk that exhausts the segment
	Last bool

	// ElapsedTime is the time since the first chunk of this pass
	ElapsedTime time.Duration
}

// ProgressCallback is called after each chunk is produced.
// Implementations should return quickly.
//
// Example:
//
//	r := transfer.New(img,
//	    transfer.WithProgressCallback(func(p transfer.Progress) {
//	        fmt.Printf("segment %d chunk %d seq 0x%02X\n", p.Segment, p.Chunk, p.Sequence)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the reader.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	r := transfer.New(img, transfer.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
