// Package sink provides scratch storage for segment payloads.
//
// A parse writes each segment's bytes into a Writer obtained from a Store,
// closes it when the segment ends, and later reopens it by ID to compute the
// checksum or to replay it in chunks. Three backends are available:
//
//	sink.NewMemoryStore()            // in-process byte slices
//	sink.NewFileStore(dir)           // one file per segment
//	sink.NewPebbleStore(dir, opts)   // chunked values in a pebble database
//
// IDs are KSUIDs, so they sort by creation time.
package sink
