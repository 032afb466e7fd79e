package protocol

import (
	"errors"
	"fmt"
)

// ProtocolError represents a negative response from the ECU.
type ProtocolError struct {
	// Operation is the service that was rejected
	Operation string

	// Code is the negative response code
	Code byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, getNRCName(e.Code), e.Code)
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// getServiceName returns a human-readable name for a service identifier.
func getServiceName(sid byte) string {
	switch sid {
	case SIDRoutineControl:
		return "routine control"
	case SIDRequestDownload:
		return "request download"
	case SIDTransferData:
		return "transfer data"
	case SIDRequestTransferExit:
		return "request transfer exit"
	default:
		return fmt.Sprintf("service 0x%02X", sid)
	}
}

// getNRCName returns a human-readable name for a negative response code.
func getNRCName(code byte) string {
	switch code {
	case NRCGeneralReject:
		return "general reject"
	case NRCServiceNotSupported:
		return "service not supported"
	case NRCSubFunctionNotSupported:
		return "sub-function not supported"
	case NRCIncorrectMessageLength:
		return "incorrect message length or invalid format"
	case NRCConditionsNotCorrect:
		return "conditions not correct"
	case NRCRequestSequenceError:
		return "request sequence error"
	case NRCRequestOutOfRange:
		return "request out of range"
	case NRCSecurityAccessDenied:
		return "security access denied"
	case NRCUploadDownloadNotAccepted:
		return "upload/download not accepted"
	case NRCTransferDataSuspended:
		return "transfer data suspended"
	case NRCGeneralProgrammingFailure:
		return "general programming failure"
	case NRCWrongBlockSequenceCounter:
		return "wrong block sequence counter"
	case NRCResponsePending:
		return "response pending"
	default:
		return fmt.Sprintf("unknown response code 0x%02X", code)
	}
}
