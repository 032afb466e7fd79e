package protocol

// requestDownload is the fixed layout of a RequestDownload record.
type requestDownload struct {
	SID                    uint8  `struc:"uint8"`
	DataFormat             uint8  `struc:"uint8"`
	AddressAndLengthFormat uint8  `struc:"uint8"`
	Address                uint32 `struc:"uint32,big"`
	Size                   uint32 `struc:"uint32,big"`
}

// checkMemory is the fixed layout of a check-memory RoutineControl record.
type checkMemory struct {
	SID         uint8  `struc:"uint8"`
	SubFunction uint8  `struc:"uint8"`
	RoutineID   uint16 `struc:"uint16,big"`
	Checksum    uint32 `struc:"uint32,big"`
}

// SegmentRecords holds the records that bracket one segment's download.
type SegmentRecords struct {
	// RequestDownload announces address and size
	RequestDownload []byte

	// TransferExit ends the transfer
	TransferExit []byte

	// CheckMemory asks the ECU to verify the checksum
	CheckMemory []byte
}
