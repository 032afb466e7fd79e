package protocol

// Service identifiers.
const (
	// SIDRoutineControl starts, stops or polls an ECU routine
	SIDRoutineControl = 0x31

	// SIDRequestDownload announces a download of one memory block
	SIDRequestDownload = 0x34

	// SIDTransferData carries one chunk of the block
	SIDTransferData = 0x36

	// SIDRequestTransferExit ends the block transfer
	SIDRequestTransferExit = 0x37

	// SIDNegativeResponse prefixes every negative response
	SIDNegativeResponse = 0x7F

	// PositiveResponseOffset is added to the request SID in a positive response
	PositiveResponseOffset = 0x40
)

// RequestDownload format identifiers.
const (
	// DataFormatUncompressed means no compression and no encryption
	DataFormatUncompressed = 0x00

	// AddressAndLengthFormat44 selects a 4-byte address and a 4-byte size
	AddressAndLengthFormat44 = 0x44
)

// RoutineControl parameters.
const (
	// RoutineStart is the startRoutine sub-function
	RoutineStart = 0x01

	// RoutineCheckMemory is the routine that compares a downloaded block
	// against its checksum
	RoutineCheckMemory = 0x0202

	// CheckMemoryPassed is the routine status reported for a matching checksum
	CheckMemoryPassed = 0x00
)

// Record sizes in bytes.
const (
	// RequestDownloadSize is SID + format + addressAndLength + address + size
	RequestDownloadSize = 11

	// CheckMemorySize is SID + sub-function + routine ID + checksum
	CheckMemorySize = 8

	// TransferDataHeaderSize is SID + block sequence counter
	TransferDataHeaderSize = 2

	// NegativeResponseSize is 7F + SID + NRC
	NegativeResponseSize = 3
)

// Negative response codes.
const (
	NRCGeneralReject             = 0x10
	NRCServiceNotSupported       = 0x11
	NRCSubFunctionNotSupported   = 0x12
	NRCIncorrectMessageLength    = 0x13
	NRCConditionsNotCorrect      = 0x22
	NRCRequestSequenceError      = 0x24
	NRCRequestOutOfRange         = 0x31
	NRCSecurityAccessDenied      = 0x33
	NRCUploadDownloadNotAccepted = 0x70
	NRCTransferDataSuspended     = 0x71
	NRCGeneralProgrammingFailure = 0x72
	NRCWrongBlockSequenceCounter = 0x73
	NRCResponsePending           = 0x78
)
