// Package firmata implements the client side of the Firmata protocol
// defined at https://github.com/firmata/protocol.
//
// A Board is constructed around any Transport (a serial port, a USB CDC
// device, a TCP stream) and exposes one method per protocol operation plus
// ReadAndDecode, which consumes exactly one incoming message and updates
// the board's pin, identity and I2C state. The Retry type decorates every
// fallible operation with an exponential-backoff loop for devices that are
// slower than the host.
//
// The Board is not internally synchronized. Callers that decode telemetry
// on one goroutine while issuing commands from another must serialize
// access with their own lock, held for the duration of each call.
package firmata

import "io"

// Transport is the byte stream connecting the host to the Firmata device.
// Reads and writes block; any transport failure is surfaced as an error.
// A Board takes exclusive ownership of its Transport.
type Transport interface {
	io.Reader
	io.Writer
	Close() error
}

// Capability is one (mode, resolution) pair a pin can be placed into.
type Capability struct {
	Mode       PinMode
	Resolution byte
}

// Pin is the recorded state and configuration of one device pin.
type Pin struct {
	// Mode is the currently configured mode.
	Mode PinMode
	// Resolution is the bit resolution of the active analog mode.
	Resolution byte
	// Modes lists every capability reported for this pin, in the order
	// the device reported them. Empty until a capability response has
	// been decoded.
	Modes []Capability
	// Value is the last known or last commanded signal value.
	Value int
}

// defaultPin returns the assumed configuration of a pin before the device
// has reported its capabilities.
func defaultPin() Pin {
	return Pin{
		Mode:       PinModeAnalog,
		Resolution: DefaultAnalogResolution,
		Modes:      []Capability{{Mode: PinModeAnalog, Resolution: DefaultAnalogResolution}},
	}
}

// supports reports whether the pin has listed the given mode as a
// capability.
func (p *Pin) supports(mode PinMode) bool {
	for _, c := range p.Modes {
		if c.Mode == mode {
			return true
		}
	}
	return false
}

// I2CReply is one decoded I2C response. Replies accumulate on the board in
// FIFO order until consumed with TakeI2CReply.
type I2CReply struct {
	Address  int
	Register int
	Data     []byte
}

// Message identifies what kind of Firmata message was just decoded. The
// payload itself lands in the board state, not in the tag.
type Message uint8

const (
	MessageProtocolVersion Message = iota
	MessageAnalog
	MessageDigital
	MessageEmptyResponse
	MessageAnalogMapping
	MessageCapability
	MessagePinState
	MessageReportFirmware
	MessageI2CReply
)

func (m Message) String() string {
	switch m {
	case MessageProtocolVersion:
		return "protocol version"
	case MessageAnalog:
		return "analog value update"
	case MessageDigital:
		return "digital port update"
	case MessageEmptyResponse:
		return "empty response"
	case MessageAnalogMapping:
		return "analog mapping response"
	case MessageCapability:
		return "capability response"
	case MessagePinState:
		return "pin state response"
	case MessageReportFirmware:
		return "firmware report"
	case MessageI2CReply:
		return "i2c reply"
	}
	return "unknown"
}
