package hexfile

// Format identifies an image encoding.
type Format int

const (
	// FormatUnknown is reported for images with no records
	FormatUnknown Format = iota

	// FormatIntelHex is Intel HEX (":LLAAAATT...CC")
	FormatIntelHex

	// FormatSRecord is Motorola S-record ("StLLAAAA...CC")
	FormatSRecord
)

func (f Format) String() string {
	switch f {
	case FormatIntelHex:
		return "intel-hex"
	case FormatSRecord:
		return "s-record"
	}
	return "unknown"
}

// Detect returns the format introduced by the first significant character
// of an image.
func Detect(first byte) (Format, error) {
	switch first {
	case ':':
		return FormatIntelHex, nil
	case 'S', 's':
		return FormatSRecord, nil
	}
	return FormatUnknown, ErrUnknownFormat
}

func (f Format) grammar() grammar {
	switch f {
	case FormatIntelHex:
		return intelHex{}
	case FormatSRecord:
		return sRecord{}
	}
	return nil
}
