package firmata

// Message types from the Firmata protocol
// (https://github.com/firmata/protocol). The low nibble of the
// channel-addressed messages carries the port or pin offset.
const (
	DigitalMessage      byte = 0x90 // low nibble = port
	DigitalMessageBound byte = 0x9F
	AnalogMessage       byte = 0xE0 // low nibble = pin offset
	AnalogMessageBound  byte = 0xEF

	ReportAnalog  byte = 0xC0 // low nibble = pin
	ReportDigital byte = 0xD0 // low nibble = port

	SetPinMode    byte = 0xF4
	ReportVersion byte = 0xF9
	SystemReset   byte = 0xFF

	StartSysEx byte = 0xF0
	EndSysEx   byte = 0xF7
)

// SysEx command bytes. These appear as the first byte of an extended
// frame's payload.
const (
	AnalogMappingQuery    byte = 0x69
	AnalogMappingResponse byte = 0x6A
	CapabilityQuery       byte = 0x6B
	CapabilityResponse    byte = 0x6C
	PinStateQuery         byte = 0x6D
	PinStateResponse      byte = 0x6E
	ExtendedAnalog        byte = 0x6F
	ServoConfig           byte = 0x70
	StringData            byte = 0x71
	I2CRequest            byte = 0x76
	I2CReplyCommand       byte = 0x77
	I2CConfigCommand      byte = 0x78
	ReportFirmware        byte = 0x79
	SamplingInterval      byte = 0x7A
)

// Every data byte inside a frame is limited to 7 bits; the top bit is
// reserved for message framing. Multi-byte values are split into 7-bit
// bytes, least significant first, each masked with SevenBitMask.
const SevenBitMask byte = 0x7F

// I2C request read/write mode, shifted into bits 3-4 of the request's
// mode byte.
const (
	i2cModeWrite byte = 0x00
	i2cModeRead  byte = 0x01
)

// DefaultAnalogResolution is the bit resolution assumed for analog pins
// before a capability response has reported the real one.
const DefaultAnalogResolution byte = 10

// PinMode identifies how a pin is currently configured.
type PinMode byte

const (
	PinModeInput   PinMode = 0x00
	PinModeOutput  PinMode = 0x01
	PinModeAnalog  PinMode = 0x02
	PinModePWM     PinMode = 0x03
	PinModeServo   PinMode = 0x04
	PinModeShift   PinMode = 0x05
	PinModeI2C     PinMode = 0x06
	PinModeOneWire PinMode = 0x07
	PinModeStepper PinMode = 0x08
	PinModeEncoder PinMode = 0x09
)

func (m PinMode) String() string {
	switch m {
	case PinModeInput:
		return "input"
	case PinModeOutput:
		return "output"
	case PinModeAnalog:
		return "analog"
	case PinModePWM:
		return "pwm"
	case PinModeServo:
		return "servo"
	case PinModeShift:
		return "shift"
	case PinModeI2C:
		return "i2c"
	case PinModeOneWire:
		return "onewire"
	case PinModeStepper:
		return "stepper"
	case PinModeEncoder:
		return "encoder"
	}
	return "unknown"
}
