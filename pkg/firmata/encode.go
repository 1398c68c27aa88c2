package firmata

// Message encoder: each operation serializes its parameters into the
// exact byte sequence the protocol defines and writes it to the
// transport. Operations that index the pin list fail with
// PinOutOfBoundsError before touching the wire.

func (b *Board) checkPin(pin int) error {
	if pin < 0 || pin >= len(b.pins) {
		return &PinOutOfBoundsError{Pin: pin, PinCount: len(b.pins)}
	}
	return nil
}

// SetPinMode places the pin into the given mode. The recorded mode is
// updated optimistically; the device does not acknowledge the change.
func (b *Board) SetPinMode(pin int, mode PinMode) error {
	if err := b.checkPin(pin); err != nil {
		return err
	}
	b.pins[pin].Mode = mode
	return b.write([]byte{SetPinMode, byte(pin), byte(mode)})
}

// DigitalWrite writes a digital level to the pin. The wire protocol
// addresses whole 8-pin ports, so the emitted value is recomputed from
// the stored value of every pin in the pin's port; sibling pins keep
// their last-written levels.
func (b *Board) DigitalWrite(pin, level int) error {
	if err := b.checkPin(pin); err != nil {
		return err
	}
	b.pins[pin].Value = level

	port := pin / 8
	value := 0
	for i := 0; i < 8; i++ {
		p := 8*port + i
		if p < len(b.pins) && b.pins[p].Value != 0 {
			value |= 1 << i
		}
	}

	return b.write([]byte{
		DigitalMessage | byte(port),
		byte(value) & SevenBitMask,
		byte(value>>7) & SevenBitMask,
	})
}

// AnalogWrite writes a 14-bit level to the pin, split into two 7-bit
// bytes, least significant first.
func (b *Board) AnalogWrite(pin, level int) error {
	if err := b.checkPin(pin); err != nil {
		return err
	}
	b.pins[pin].Value = level

	return b.write([]byte{
		AnalogMessage | byte(pin),
		byte(level) & SevenBitMask,
		byte(level>>7) & SevenBitMask,
	})
}

// ReportDigital toggles unsolicited digital reporting for the given
// 8-pin port.
func (b *Board) ReportDigital(port, state int) error {
	return b.write([]byte{ReportDigital | byte(port), byte(state)})
}

// ReportAnalog toggles unsolicited analog reporting for the pin.
func (b *Board) ReportAnalog(pin, state int) error {
	return b.write([]byte{ReportAnalog | byte(pin), byte(state)})
}

// QueryFirmware asks the device for its firmware name and version.
func (b *Board) QueryFirmware() error {
	return b.write([]byte{StartSysEx, ReportFirmware, EndSysEx})
}

// QueryCapabilities asks the device for the full capability listing of
// every pin.
func (b *Board) QueryCapabilities() error {
	return b.write([]byte{StartSysEx, CapabilityQuery, EndSysEx})
}

// QueryAnalogMapping asks the device which pins are analog-capable.
func (b *Board) QueryAnalogMapping() error {
	return b.write([]byte{StartSysEx, AnalogMappingQuery, EndSysEx})
}

// QueryPinState asks the device for the current mode and state of one
// pin.
func (b *Board) QueryPinState(pin int) error {
	if err := b.checkPin(pin); err != nil {
		return err
	}
	return b.write([]byte{StartSysEx, PinStateQuery, byte(pin), EndSysEx})
}

// I2CConfig sets the delay in microseconds between writing an I2C
// register and reading data back from it, for devices that need one.
func (b *Board) I2CConfig(delay int) error {
	return b.write([]byte{
		StartSysEx,
		I2CConfigCommand,
		byte(delay) & SevenBitMask,
		byte(delay>>7) & SevenBitMask,
		EndSysEx,
	})
}

// I2CRead requests size bytes from the I2C device at the given address.
// The reply arrives asynchronously and is queued on the board once
// decoded.
func (b *Board) I2CRead(address, size int) error {
	return b.write([]byte{
		StartSysEx,
		I2CRequest,
		byte(address),
		i2cModeRead << 3,
		byte(size) & SevenBitMask,
		byte(size>>7) & SevenBitMask,
		EndSysEx,
	})
}

// I2CWrite writes data to the I2C device at the given address. Every
// data byte is split into a 7-bit low/high pair on the wire.
func (b *Board) I2CWrite(address int, data []byte) error {
	buf := []byte{StartSysEx, I2CRequest, byte(address), i2cModeWrite << 3}
	for _, d := range data {
		buf = append(buf, d&SevenBitMask, (d>>7)&SevenBitMask)
	}
	buf = append(buf, EndSysEx)
	return b.write(buf)
}

// Reset asks the device to return to its power-up state.
func (b *Board) Reset() error {
	return b.write([]byte{SystemReset})
}
