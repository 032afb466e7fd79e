// Package transfer replays parsed segments as TransferData chunks.
//
// # Overview
//
// A Reader serves each segment of a Source (typically a *hexfile.Image) in
// chunks of at most maxChunkSize bytes:
//
//	[0x36][SEQ][PAYLOAD...]
//
// SEQ is an 8-bit block sequence counter. The first chunk of a segment
// carries 1, each following chunk increments it, and 0xFF wraps to 0x00.
// The chunk that exhausts the segment is reported with isLast set; the
// segment's cursor is then released, so the next request starts again from
// offset zero with the counter at 1.
//
// # Basic Usage
//
//	img, err := hexfile.ParseFile("app.hex", crc.MustNew(crc.CRC32))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	r := transfer.New(img)
//	defer r.Close()
//
//	for {
//	    chunk, last, err := r.NextChunk(0, 258)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    send(chunk)
//	    if last {
//	        break
//	    }
//	}
//
// WriteSegment runs the same loop onto an io.Writer, one Write per chunk:
//
//	err := r.WriteSegment(ctx, conn, 0, 258)
//
// # Progress Tracking
//
//	r := transfer.New(img,
//	    transfer.WithProgressCallback(func(p transfer.Progress) {
//	        fmt.Printf("segment %d: %.1f%% (chunk %d)\n", p.Segment, p.Percentage, p.Chunk)
//	    }),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - NoSegmentError: the index names no segment (matches ErrNoSegment)
//   - ChunkSourceError: the payload could not be reopened or read
//     (matches ErrChunkSource); the cursor is released
//   - ErrChunkSize: maxChunkSize leaves no room for payload
//
// # Fault Injection
//
// WithCorruptedPayload adds one to every payload byte before it is returned.
// Headers are untouched, so a receiver sees well-formed chunks whose
// checksum will not match.
package transfer
