package firmata

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageTooShort is returned when a frame ends before the bytes
	// its type requires have arrived.
	ErrMessageTooShort = errors.New("message too short")

	// ErrAttemptsExceeded is returned by the retry wrapper when the
	// configured attempt limit is exhausted. It wraps the last
	// underlying error.
	ErrAttemptsExceeded = errors.New("retry attempts exceeded")

	// ErrTimeoutExceeded is returned by the retry wrapper when the
	// backoff policy's elapsed-time budget is exhausted. It wraps the
	// last underlying error.
	ErrTimeoutExceeded = errors.New("retry timeout exceeded")
)

// UnknownSysExError is returned when an extended frame carries a SysEx
// command byte this client does not recognize.
type UnknownSysExError struct {
	Code byte
}

func (e *UnknownSysExError) Error() string {
	return fmt.Sprintf("unknown SysEx code: 0x%02X", e.Code)
}

// BadByteError is returned when the first byte of a message matches no
// known message type.
type BadByteError struct {
	Byte byte
}

func (e *BadByteError) Error() string {
	return fmt.Sprintf("received a bad byte: 0x%02X", e.Byte)
}

// PinOutOfBoundsError is returned when an operation addresses a pin index
// outside the board's current pin list.
type PinOutOfBoundsError struct {
	Pin      int
	PinCount int
}

func (e *PinOutOfBoundsError) Error() string {
	return fmt.Sprintf("pin out of bounds: %d (%d)", e.Pin, e.PinCount)
}

// TextDecodeError is returned when a firmware name on the wire is not
// valid UTF-8.
type TextDecodeError struct {
	Raw []byte
}

func (e *TextDecodeError) Error() string {
	return fmt.Sprintf("firmware name is not valid UTF-8 (% X)", e.Raw)
}
