// Package hexfile parses firmware images in Intel HEX or Motorola S-record
// format into contiguous memory segments and checksums each one.
//
// # Image Formats
//
// The format is chosen from the first significant character of the file:
// ':' selects Intel HEX, 'S' selects S-record. Both formats are decoded into
// the same record kinds (data, base address, start address, header, count,
// end) and fed through one segment builder, so an image converted between
// the formats yields identical segments.
//
// # Segments
//
// A segment is a maximal run of data records whose addresses follow on from
// each other. Whenever a data record starts at an address other than the end
// of the current run, the run is closed, checksummed and a new one begins.
// Segments are reported in the order they appear in the file; the parser
// does not sort or merge them.
//
// Segment payloads are written to a sink.Store while parsing and can be
// reopened later with Image.OpenSegment.
//
// # Usage
//
//	eng := crc.MustNew(crc.CRC32)
//	img, err := hexfile.ParseFile("app.hex", eng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	for _, seg := range img.Segments {
//	    fmt.Printf("0x%08X %6d 0x%08X\n", seg.Address, seg.Size, seg.Checksum)
//	}
//
// # Malformed Records
//
// By default, lines that fail to decode (bad hex, wrong length, overlong
// line, unknown type) are skipped, logged and counted in Image.Skipped. A
// record with a wrong checksum is still applied, logged and counted in
// Image.BadChecksums. WithStrict makes the first bad line of either kind
// abort the parse with a *RecordError.
package hexfile
