// Package protocol builds the diagnostic (UDS, ISO 14229) records a flashing
// host sends for each segment, and parses the ECU's answers.
//
// # Download Sequence
//
// For every segment reported by the hexfile package the host sends:
//
//	RequestDownload:  [34][00][44][ADDRESS(4)][SIZE(4)]
//	TransferData:     [36][SEQ][PAYLOAD...]            (repeated)
//	RequestTransferExit: [37]
//	RoutineControl:   [31][01][02 02][CRC(4)]          (check memory)
//
// All multi-byte fields are big-endian. TransferData records are produced
// by the transfer package; this package supplies the fixed-layout records
// around them.
//
// # Record Builders
//
//	req := protocol.BuildRequestDownload(seg.Address, seg.Size)
//	chk := protocol.BuildCheckMemory(seg.Checksum)
//
// # Response Parsers
//
// A positive response carries the request SID plus 0x40. A negative
// response is [7F][SID][NRC] and is reported as a *ProtocolError:
//
//	data, err := protocol.ExpectResponse(protocol.SIDRequestDownload, frame)
//	if protocol.IsProtocolError(err) {
//	    // err.Error() returns: "request download failed: upload/download not accepted (0x70)"
//	}
//	maxBlock, err := protocol.ParseRequestDownloadResponse(data)
package protocol
