package firmata

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
)

// Board is a connected Firmata device: the transport, the pin list, the
// device identity and the queue of received I2C replies. All protocol
// operations are methods on Board.
type Board struct {
	conn   Transport
	logger *slog.Logger

	pins            []Pin
	i2cData         []I2CReply
	protocolVersion string
	firmwareName    string
	firmwareVersion string
}

// Option configures a Board before its initialization handshake runs.
type Option func(*Board)

// WithLogger sets the logger used for frame-level debug output. The
// default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

func newBoard(conn Transport, opts ...Option) *Board {
	b := &Board{
		conn:   conn,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// New connects a Board to the device behind conn and runs the
// initialization handshake: it queries firmware, capabilities and analog
// mapping, decodes incoming messages until all three responses have
// arrived (in any order, tolerating unrelated traffic in between), and
// then enables digital reporting on ports 0 and 1. Any failure aborts
// construction and surfaces the underlying error.
func New(conn Transport, opts ...Option) (*Board, error) {
	b := newBoard(conn, opts...)
	if err := b.initialize(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) initialize() error {
	if err := b.QueryFirmware(); err != nil {
		return err
	}
	if err := b.QueryCapabilities(); err != nil {
		return err
	}
	if err := b.QueryAnalogMapping(); err != nil {
		return err
	}

	var gotFirmware, gotCapabilities, gotMapping bool
	for !gotFirmware || !gotCapabilities || !gotMapping {
		msg, err := b.ReadAndDecode()
		if err != nil {
			return err
		}
		switch msg {
		case MessageReportFirmware:
			gotFirmware = true
		case MessageCapability:
			gotCapabilities = true
		case MessageAnalogMapping:
			gotMapping = true
		default:
			// Unrelated message; keep waiting.
		}
	}

	// Start digital-input reporting for the first 16 pins.
	if err := b.ReportDigital(0, 1); err != nil {
		return err
	}
	return b.ReportDigital(1, 1)
}

// Close closes the underlying transport.
func (b *Board) Close() error {
	return b.conn.Close()
}

// Pins returns the board's pin list. The slice is the board's own state;
// it is replaced wholesale when a capability response is decoded.
func (b *Board) Pins() []Pin {
	return b.pins
}

// ProtocolVersion returns the protocol version reported by the device, or
// the empty string if none has been decoded yet.
func (b *Board) ProtocolVersion() string {
	return b.protocolVersion
}

// FirmwareName returns the firmware name reported by the device.
func (b *Board) FirmwareName() string {
	return b.firmwareName
}

// FirmwareVersion returns the firmware version reported by the device.
func (b *Board) FirmwareVersion() string {
	return b.firmwareVersion
}

// I2CReplies returns the queued, unconsumed I2C replies in arrival order.
func (b *Board) I2CReplies() []I2CReply {
	return b.i2cData
}

// TakeI2CReply removes and returns the oldest queued I2C reply. The
// second return value is false when the queue is empty.
func (b *Board) TakeI2CReply() (I2CReply, bool) {
	if len(b.i2cData) == 0 {
		return I2CReply{}, false
	}
	reply := b.i2cData[0]
	b.i2cData = b.i2cData[1:]
	return reply, true
}

func (b *Board) String() string {
	return fmt.Sprintf("Board{firmware=%s, version=%s, protocol=%s}",
		b.firmwareName, b.firmwareVersion, b.protocolVersion)
}

func (b *Board) write(buf []byte) error {
	b.logger.Debug("writing frame", slog.String("bytes", encodeBytesToString(buf)))
	if _, err := b.conn.Write(buf); err != nil {
		return fmt.Errorf("transport write: %w", err)
	}
	return nil
}

// encodeBytesToString renders raw frame bytes as dash-separated hex for
// log output.
func encodeBytesToString(b []byte) string {
	hexDigits := hex.EncodeToString(b)
	var builder strings.Builder
	for i, r := range hexDigits {
		if i > 0 && i%2 == 0 {
			builder.WriteString("-")
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
