// Package usbtrans opens a Firmata board attached over native USB and
// exposes its bulk endpoints as a byte-stream transport.
package usbtrans

import (
	"fmt"

	"github.com/karalabe/usb"

	"github.com/gofirmata/gofirmata/pkg/firmata"
)

// Device is a board reached over raw USB bulk endpoints. Bulk transfers
// preserve byte order, so the device satisfies the firmata.Transport
// contract directly.
type Device struct {
	dev usb.Device
}

var _ firmata.Transport = (*Device)(nil)

// Open finds the first USB device matching the vendor/product pair and
// opens it.
func Open(vendorID, productID uint16) (*Device, error) {
	infos, err := usb.Enumerate(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("usb enumerate: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no USB device found (VID:0x%04X PID:0x%04X)", vendorID, productID)
	}

	dev, err := infos[0].Open()
	if err != nil {
		return nil, fmt.Errorf("usb open: %w", err)
	}

	return &Device{dev: dev}, nil
}

func (d *Device) Read(p []byte) (int, error) {
	n, err := d.dev.Read(p)
	if err != nil {
		return n, fmt.Errorf("usb read: %w", err)
	}
	return n, nil
}

func (d *Device) Write(p []byte) (int, error) {
	n, err := d.dev.Write(p)
	if err != nil {
		return n, fmt.Errorf("usb write: %w", err)
	}
	return n, nil
}

func (d *Device) Close() error {
	return d.dev.Close()
}
