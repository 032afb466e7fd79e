package protocol

import (
	"fmt"
)

// ParseResponse splits a response frame into its SID and data.
// A negative response is returned as a *ProtocolError naming the rejected
// service.
//
// Response structure:
//
//	positive: [SID+40][DATA...]
//	negative: [7F][SID][NRC]
func ParseResponse(frame []byte) (sid byte, data []byte, err error) {
	if len(frame) == 0 {
		return 0, nil, fmt.Errorf("empty response")
	}

	if frame[0] == SIDNegativeResponse {
		if len(frame) != NegativeResponseSize {
			return 0, nil, fmt.Errorf("invalid negative response length: got %d bytes, expected %d",
				len(frame), NegativeResponseSize)
		}
		return frame[1], nil, &ProtocolError{Operation: getServiceName(frame[1]), Code: frame[2]}
	}

	return frame[0], frame[1:], nil
}

// ExpectResponse parses frame as the answer to requestSID and returns its
// data. A positive response to any other service is an error.
func ExpectResponse(requestSID byte, frame []byte) ([]byte, error) {
	sid, data, err := ParseResponse(frame)
	if err != nil {
		return nil, err
	}
	if sid != requestSID+PositiveResponseOffset {
		return nil, fmt.Errorf("unexpected response SID: got 0x%02X, expected 0x%02X",
			sid, requestSID+PositiveResponseOffset)
	}
	return data, nil
}

// ParseRequestDownloadResponse returns the maximum block length the ECU
// accepts per TransferData record, SID and counter included.
//
// Data format:
//
//	[LENGTH_FORMAT][MAX_BLOCK_LENGTH(n)]   n = LENGTH_FORMAT >> 4, 1..4
func ParseRequestDownloadResponse(data []byte) (uint32, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("request download response is empty")
	}

	n := int(data[0] >> 4)
	if n < 1 || n > 4 {
		return 0, fmt.Errorf("unsupported max block length size %d", n)
	}
	if len(data) != 1+n {
		return 0, fmt.Errorf("invalid data length for request download response: got %d bytes, expected %d",
			len(data), 1+n)
	}

	var maxBlock uint32
	for _, b := range data[1:] {
		maxBlock = maxBlock<<8 | uint32(b)
	}
	return maxBlock, nil
}

// ParseTransferDataResponse returns the block sequence counter echoed by the
// ECU.
func ParseTransferDataResponse(data []byte) (byte, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("transfer data response is empty")
	}
	return data[0], nil
}

// ParseCheckMemoryResponse reports whether the ECU accepted the checksum.
//
// Data format:
//
//	[01][02][02][STATUS]
func ParseCheckMemoryResponse(data []byte) (bool, error) {
	if len(data) != 4 {
		return false, fmt.Errorf("invalid data length for check memory response: got %d bytes, expected 4", len(data))
	}
	if data[0] != RoutineStart || uint16(data[1])<<8|uint16(data[2]) != RoutineCheckMemory {
		return false, fmt.Errorf("response is for routine %02X %02X%02X, expected check memory", data[0], data[1], data[2])
	}
	return data[3] == CheckMemoryPassed, nil
}
