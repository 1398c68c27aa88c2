package firmata

import (
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// ReadAndDecode reads exactly one Firmata message from the transport,
// classifies it, applies its payload to the board state, and returns the
// message tag. It blocks until a full message has arrived or the
// transport errors out. Malformed input is surfaced immediately; nothing
// is recovered internally.
//
// Wire messages may address pins the host has not enumerated yet; any
// derived pin index outside the current pin list is skipped without
// error.
func (b *Board) ReadAndDecode() (Message, error) {
	buf := make([]byte, 3)
	if _, err := io.ReadFull(b.conn, buf); err != nil {
		return 0, fmt.Errorf("transport read: %w", err)
	}

	switch {
	case buf[0] == ReportVersion:
		b.protocolVersion = fmt.Sprintf("%d.%d", buf[1], buf[2])
		return MessageProtocolVersion, nil

	case buf[0] >= AnalogMessage && buf[0] <= AnalogMessageBound:
		// Analog channels sit 14 pins above the port-addressed
		// digital space.
		pin := int(buf[0]&0x0F) + 14
		value := int(buf[1]) | int(buf[2])<<7
		if pin < len(b.pins) {
			b.pins[pin].Value = value
		}
		return MessageAnalog, nil

	case buf[0] >= DigitalMessage && buf[0] <= DigitalMessageBound:
		port := int(buf[0] & 0x0F)
		value := int(buf[1]) | int(buf[2])<<7
		for i := 0; i < 8; i++ {
			pin := 8*port + i
			// The port byte carries a bit for every pin in the
			// port; only pins configured as inputs take it.
			if pin < len(b.pins) && b.pins[pin].Mode == PinModeInput {
				b.pins[pin].Value = (value >> i) & 0x01
			}
		}
		return MessageDigital, nil

	case buf[0] == StartSysEx:
		return b.decodeSysEx(buf)

	default:
		return 0, &BadByteError{Byte: buf[0]}
	}
}

func (b *Board) decodeSysEx(buf []byte) (Message, error) {
	// buf holds StartSysEx plus the next two bytes; keep reading one
	// byte at a time until the frame terminator arrives.
	for buf[1] != EndSysEx && buf[len(buf)-1] != EndSysEx {
		one := make([]byte, 1)
		if _, err := io.ReadFull(b.conn, one); err != nil {
			return 0, fmt.Errorf("transport read: %w", err)
		}
		buf = append(buf, one[0])
	}
	b.logger.Debug("extended frame", slog.String("bytes", encodeBytesToString(buf)))

	switch buf[1] {
	case EndSysEx:
		return MessageEmptyResponse, nil

	case AnalogMappingResponse:
		// One payload byte per pin; 0x7F marks a pin with no analog
		// channel. Stop before indexing past the pin list a prior
		// capability response established.
		upper := len(buf) - 1
		if limit := len(b.pins) + 2; upper > limit {
			upper = limit
		}
		for i := 2; i < upper; i++ {
			if buf[i] == 0x7F {
				continue
			}
			pin := &b.pins[i-2]
			pin.Mode = PinModeAnalog
			pin.Resolution = DefaultAnalogResolution
			if !pin.supports(PinModeAnalog) {
				pin.Modes = append(pin.Modes, Capability{
					Mode:       PinModeAnalog,
					Resolution: DefaultAnalogResolution,
				})
			}
		}
		return MessageAnalogMapping, nil

	case CapabilityResponse:
		// Pin 0 is a reserved placeholder.
		pins := []Pin{defaultPin()}
		var modes []Capability
		for i := 2; i < len(buf)-1; {
			if buf[i] == 0x7F {
				// Sentinel: this pin's capability listing is
				// complete.
				pin := Pin{Modes: modes}
				if len(modes) > 0 {
					pin.Mode = modes[0].Mode
					pin.Resolution = modes[0].Resolution
				}
				pins = append(pins, pin)
				modes = nil
				i++
				continue
			}
			if i+1 >= len(buf)-1 {
				return 0, ErrMessageTooShort
			}
			modes = append(modes, Capability{
				Mode:       PinMode(buf[i]),
				Resolution: buf[i+1],
			})
			i += 2
		}
		b.pins = pins
		return MessageCapability, nil

	case ReportFirmware:
		if len(buf) < 5 {
			return 0, ErrMessageTooShort
		}
		b.firmwareVersion = fmt.Sprintf("%d.%d", buf[2], buf[3])
		if len(buf) > 5 {
			name := buf[4 : len(buf)-1]
			if !utf8.Valid(name) {
				return 0, &TextDecodeError{Raw: name}
			}
			b.firmwareName = string(name)
		}
		return MessageReportFirmware, nil

	case I2CReplyCommand:
		if len(buf) < 8 {
			return 0, ErrMessageTooShort
		}
		reply := I2CReply{
			Address:  int(buf[2]) | int(buf[3])<<7,
			Register: int(buf[4]) | int(buf[5])<<7,
			Data:     []byte{buf[6] | buf[7]<<7},
		}
		for i := 8; i < len(buf)-1; i += 2 {
			if buf[i] == EndSysEx || i+2 > len(buf) {
				break
			}
			reply.Data = append(reply.Data, buf[i]|buf[i+1]<<7)
		}
		b.i2cData = append(b.i2cData, reply)
		return MessageI2CReply, nil

	case PinStateResponse:
		if len(buf) < 4 || buf[2] == EndSysEx {
			return 0, ErrMessageTooShort
		}
		if buf[3] == EndSysEx || len(buf) < 6 {
			// The device answered with no state to apply.
			return MessagePinState, nil
		}
		if pin := int(buf[2]); pin < len(b.pins) {
			b.pins[pin].Mode = PinMode(buf[3])
			// Multi-byte extended state values are not decoded.
			b.pins[pin].Value = int(buf[4])
		}
		return MessagePinState, nil

	default:
		return 0, &UnknownSysExError{Code: buf[1]}
	}
}
