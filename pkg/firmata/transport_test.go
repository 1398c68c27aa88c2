package firmata

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
)

var errTransportDown = errors.New("transport down")

// scriptConn is an in-memory Transport for tests: reads drain a scripted
// input buffer and writes land in an output buffer. The first failWrites
// writes fail.
type scriptConn struct {
	in         bytes.Buffer
	out        bytes.Buffer
	failWrites int
	closed     bool
}

func (c *scriptConn) Read(p []byte) (int, error) {
	if c.in.Len() == 0 {
		return 0, io.EOF
	}
	return c.in.Read(p)
}

func (c *scriptConn) Write(p []byte) (int, error) {
	if c.failWrites > 0 {
		c.failWrites--
		return 0, errTransportDown
	}
	return c.out.Write(p)
}

func (c *scriptConn) Close() error {
	c.closed = true
	return nil
}

func (c *scriptConn) feed(b ...byte) {
	c.in.Write(b)
}

// newTestBoard builds a board around conn without running the
// initialization handshake, with n assumed-default pins and a silenced
// logger.
func newTestBoard(conn Transport, n int) *Board {
	b := newBoard(conn, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	for i := 0; i < n; i++ {
		b.pins = append(b.pins, defaultPin())
	}
	return b
}
