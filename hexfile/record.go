package hexfile

import "fmt"

// recordKind is the format-independent meaning of a record.
type recordKind int

const (
	kindData recordKind = iota
	kindExtendSegment
	kindExtendLinear
	kindStart
	kindHeader
	kindCount
	kindEnd
)

func (k recordKind) String() string {
	switch k {
	case kindData:
		return "data"
	case kindExtendSegment:
		return "extend-segment"
	case kindExtendLinear:
		return "extend-linear"
	case kindStart:
		return "start"
	case kindHeader:
		return "header"
	case kindCount:
		return "count"
	case kindEnd:
		return "end"
	}
	return "unknown"
}

// record is one decoded line. For data records address is the record's own
// address field; for extend records it is the new base; for start and end
// records it is the entry point.
type record struct {
	kind    recordKind
	address uint32
	data    []byte
	hasAddr bool
}

// grammar decodes a single line of one image format. A checksum mismatch
// returns the decoded record together with an error matching
// ErrRecordChecksum.
type grammar interface {
	decode(line string) (record, error)
}

// Intel HEX record types.
const (
	IntelData                   = 0x00
	IntelEndOfFile              = 0x01
	IntelExtendedSegmentAddress = 0x02
	IntelStartSegmentAddress    = 0x03
	IntelExtendedLinearAddress  = 0x04
	IntelStartLinearAddress     = 0x05
)

// Intel HEX layout, in bytes after the ':' is stripped.
const (
	// IntelHeaderSize is byte count + 2 address bytes + record type
	IntelHeaderSize = 4

	// IntelChecksumSize is the trailing checksum byte
	IntelChecksumSize = 1

	// SegmentBaseMultiplier scales an extended segment address
	SegmentBaseMultiplier = 16

	// LinearBaseShift positions an extended linear address
	LinearBaseShift = 16
)

type intelHex struct{}

// decode parses ":LLAAAATT<data>CC".
func (intelHex) decode(line string) (record, error) {
	if len(line) < 1 || line[0] != ':' {
		return record{}, fmt.Errorf("intel hex record must start with ':'")
	}

	data, err := DecodeHexPairs(line[1:])
	if err != nil {
		return record{}, err
	}
	if len(data) < IntelHeaderSize+IntelChecksumSize {
		return record{}, fmt.Errorf("%w: got %d bytes, minimum is %d",
			ErrRecordLength, len(data), IntelHeaderSize+IntelChecksumSize)
	}

	dataLen := int(data[0])
	expectedLen := IntelHeaderSize + dataLen + IntelChecksumSize
	if len(data) != expectedLen {
		return record{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrRecordLength, len(data), expectedLen)
	}

	rec, err := intelFields(data, dataLen)
	if err != nil {
		return record{}, err
	}

	// A checksum mismatch still yields the decoded record
	checksum := data[len(data)-1]
	if calculated := intelChecksum(data[:len(data)-1]); checksum != calculated {
		return rec, fmt.Errorf("%w: got 0x%02X, expected 0x%02X", ErrRecordChecksum, checksum, calculated)
	}
	return rec, nil
}

// intelFields interprets a length-checked Intel HEX record.
func intelFields(data []byte, dataLen int) (record, error) {
	addr := beUint(data[1:3])
	payload := data[IntelHeaderSize : IntelHeaderSize+dataLen]

	switch data[3] {
	case IntelData:
		return record{kind: kindData, address: addr, data: payload, hasAddr: true}, nil
	case IntelEndOfFile:
		return record{kind: kindEnd}, nil
	case IntelExtendedSegmentAddress:
		if dataLen != 2 {
			return record{}, fmt.Errorf("%w: extended segment address needs 2 bytes, got %d", ErrRecordLength, dataLen)
		}
		return record{kind: kindExtendSegment, address: beUint(payload) * SegmentBaseMultiplier}, nil
	case IntelExtendedLinearAddress:
		if dataLen != 2 {
			return record{}, fmt.Errorf("%w: extended linear address needs 2 bytes, got %d", ErrRecordLength, dataLen)
		}
		return record{kind: kindExtendLinear, address: beUint(payload) << LinearBaseShift}, nil
	case IntelStartSegmentAddress:
		if dataLen != 4 {
			return record{}, fmt.Errorf("%w: start segment address needs 4 bytes, got %d", ErrRecordLength, dataLen)
		}
		// CS:IP
		cs, ip := beUint(payload[0:2]), beUint(payload[2:4])
		return record{kind: kindStart, address: cs*SegmentBaseMultiplier + ip, hasAddr: true}, nil
	case IntelStartLinearAddress:
		if dataLen != 4 {
			return record{}, fmt.Errorf("%w: start linear address needs 4 bytes, got %d", ErrRecordLength, dataLen)
		}
		return record{kind: kindStart, address: beUint(payload), hasAddr: true}, nil
	}
	return record{}, fmt.Errorf("%w: 0x%02X", ErrRecordType, data[3])
}

// intelChecksum is the two's complement of the byte sum.
func intelChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum + 1
}

// sRecordAddressSize maps an S-record type digit to its address width in
// bytes. Type 4 is reserved.
var sRecordAddressSize = map[byte]int{
	'0': 2, '1': 2, '2': 3, '3': 4,
	'5': 2, '6': 3,
	'7': 4, '8': 3, '9': 2,
}

// S-record layout, in bytes after "St" is stripped.
const (
	// SRecordCountSize is the byte-count field
	SRecordCountSize = 1

	// SRecordChecksumSize is the trailing checksum byte
	SRecordChecksumSize = 1
)

type sRecord struct{}

// decode parses "St LL <addr> <data> CC". The byte count covers the address,
// data and checksum.
func (sRecord) decode(line string) (record, error) {
	if len(line) < 2 || (line[0] != 'S' && line[0] != 's') {
		return record{}, fmt.Errorf("s-record must start with 'S'")
	}

	t := line[1]
	addrSize, ok := sRecordAddressSize[t]
	if !ok {
		return record{}, fmt.Errorf("%w: S%c", ErrRecordType, t)
	}

	data, err := DecodeHexPairs(line[2:])
	if err != nil {
		return record{}, err
	}
	minLen := SRecordCountSize + addrSize + SRecordChecksumSize
	if len(data) < minLen {
		return record{}, fmt.Errorf("%w: got %d bytes, minimum is %d", ErrRecordLength, len(data), minLen)
	}

	count := int(data[0])
	if len(data) != SRecordCountSize+count {
		return record{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrRecordLength, len(data), SRecordCountSize+count)
	}

	addr := beUint(data[SRecordCountSize : SRecordCountSize+addrSize])
	payload := data[SRecordCountSize+addrSize : len(data)-SRecordChecksumSize]

	var rec record
	switch t {
	case '0':
		rec = record{kind: kindHeader, data: payload}
	case '1', '2', '3':
		rec = record{kind: kindData, address: addr, data: payload, hasAddr: true}
	case '5', '6':
		rec = record{kind: kindCount, address: addr}
	default: // '7', '8', '9'
		rec = record{kind: kindEnd, address: addr, hasAddr: true}
	}

	// A checksum mismatch still yields the decoded record
	checksum := data[len(data)-1]
	if calculated := sRecordChecksum(data[:len(data)-1]); checksum != calculated {
		return rec, fmt.Errorf("%w: got 0x%02X, expected 0x%02X", ErrRecordChecksum, checksum, calculated)
	}
	return rec, nil
}

// sRecordChecksum is the ones' complement of the byte sum.
func sRecordChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum
}
