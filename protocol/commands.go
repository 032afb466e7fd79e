package protocol

import (
	"bytes"

	"github.com/lunixbochs/struc"
)

// pack encodes a fixed-layout record. The layouts in this package contain
// only sized integers, so packing cannot fail.
func pack(v interface{}) []byte {
	var buf bytes.Buffer
	if err := struc.Pack(&buf, v); err != nil {
		panic("protocol: " + err.Error())
	}
	return buf.Bytes()
}

// BuildRequestDownload constructs a RequestDownload record for a segment.
//
// Record structure (RequestDownloadSize bytes):
//
//	[34][00][44][ADDRESS(4)][SIZE(4)]
//
// Example:
//
//	req := protocol.BuildRequestDownload(0x08000000, 0x1000)
//	// 34 00 44 08 00 00 00 00 00 10 00
func BuildRequestDownload(address, size uint32) []byte {
	return pack(&requestDownload{
		SID:                    SIDRequestDownload,
		DataFormat:             DataFormatUncompressed,
		AddressAndLengthFormat: AddressAndLengthFormat44,
		Address:                address,
		Size:                   size,
	})
}

// BuildCheckMemory constructs the RoutineControl record that asks the ECU to
// verify a downloaded segment against checksum.
//
// Record structure (CheckMemorySize bytes):
//
//	[31][01][02][02][CRC(4)]
func BuildCheckMemory(checksum uint32) []byte {
	return pack(&checkMemory{
		SID:         SIDRoutineControl,
		SubFunction: RoutineStart,
		RoutineID:   RoutineCheckMemory,
		Checksum:    checksum,
	})
}

// BuildRequestTransferExit constructs a RequestTransferExit record.
func BuildRequestTransferExit() []byte {
	return []byte{SIDRequestTransferExit}
}

// TransferDataHeader returns the two bytes that open a TransferData record.
func TransferDataHeader(seq byte) [TransferDataHeaderSize]byte {
	return [TransferDataHeaderSize]byte{SIDTransferData, seq}
}

// BuildTransferData constructs a complete TransferData record.
func BuildTransferData(seq byte, payload []byte) []byte {
	hdr := TransferDataHeader(seq)
	record := make([]byte, 0, TransferDataHeaderSize+len(payload))
	record = append(record, hdr[:]...)
	return append(record, payload...)
}

// BuildSegmentRecords returns the records that surround the TransferData
// sequence of one segment.
func BuildSegmentRecords(address, size, checksum uint32) SegmentRecords {
	return SegmentRecords{
		RequestDownload: BuildRequestDownload(address, size),
		TransferExit:    BuildRequestTransferExit(),
		CheckMemory:     BuildCheckMemory(checksum),
	}
}
