package wire

import (
	"errors"
	"fmt"
)

// DecodeError represents a malformed inbound OSC payload.
//
// Decode errors are a drop-and-log condition: the dispatcher discards the
// message and performs no state change.
type DecodeError struct {
	// Code identifies the error category.
	Code DecodeErrorCode

	// Address is the OSC address of the offending message.
	Address string

	// Message is a human-readable description.
	Message string
}

// DecodeErrorCode categorizes decode errors.
type DecodeErrorCode string

const (
	// ErrCodeBadAddress indicates the message address is not part of the protocol.
	ErrCodeBadAddress DecodeErrorCode = "BAD_ADDRESS"

	// ErrCodeShortPayload indicates the fixed positional prefix is incomplete.
	ErrCodeShortPayload DecodeErrorCode = "SHORT_PAYLOAD"

	// ErrCodeBadArgument indicates a positional argument has the wrong type.
	ErrCodeBadArgument DecodeErrorCode = "BAD_ARGUMENT"

	// ErrCodeOddParams indicates an odd trailing-argument count, so the
	// key-value pairing cannot be reconstructed.
	ErrCodeOddParams DecodeErrorCode = "ODD_PARAMS"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("%s: %s (address=%s)", e.Code, e.Message, e.Address)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDecodeError reports whether err is a DecodeError.
// Uses errors.As to handle wrapped errors.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func newDecodeError(code DecodeErrorCode, address, format string, args ...any) *DecodeError {
	return &DecodeError{
		Code:    code,
		Address: address,
		Message: fmt.Sprintf(format, args...),
	}
}
