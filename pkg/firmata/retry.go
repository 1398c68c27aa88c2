package firmata

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry decorates a Board with retrying counterparts of every fallible
// operation. Each call runs the underlying operation in an
// exponential-backoff loop, sleeping between attempts, until it succeeds
// or the policy is exhausted. Every failure is treated as transient: a
// malformed frame retries just like an I/O hiccup, which suits slow
// embedded peers at the cost of masking genuinely permanent protocol
// errors.
//
// Exhaustion returns ErrAttemptsExceeded or ErrTimeoutExceeded wrapping
// the last underlying error.
type Retry struct {
	Board *Board

	// NewBackOff builds the backoff policy for one retried operation.
	// The default policy caps the interval between attempts at 5
	// seconds.
	NewBackOff func() backoff.BackOff

	// MaxAttempts, when non-zero, bounds the total number of attempts
	// per operation.
	MaxAttempts int

	sleep func(time.Duration)
}

// NewRetry returns a Retry around the board with the default backoff
// policy.
func NewRetry(b *Board) *Retry {
	return &Retry{
		Board:      b,
		NewBackOff: defaultBackOff,
		sleep:      time.Sleep,
	}
}

func defaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 5 * time.Second
	return bo
}

func (r *Retry) do(op func() error) error {
	newBackOff := r.NewBackOff
	if newBackOff == nil {
		newBackOff = defaultBackOff
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	bo := newBackOff()
	bo.Reset()

	var attempts int
	for {
		err := op()
		if err == nil {
			return nil
		}
		attempts++
		if r.MaxAttempts > 0 && attempts >= r.MaxAttempts {
			return fmt.Errorf("%w: %w", ErrAttemptsExceeded, err)
		}
		next := bo.NextBackOff()
		if next == backoff.Stop {
			return fmt.Errorf("%w: %w", ErrTimeoutExceeded, err)
		}
		sleep(next)
	}
}

// SetPinMode retries Board.SetPinMode.
func (r *Retry) SetPinMode(pin int, mode PinMode) error {
	return r.do(func() error { return r.Board.SetPinMode(pin, mode) })
}

// DigitalWrite retries Board.DigitalWrite.
func (r *Retry) DigitalWrite(pin, level int) error {
	return r.do(func() error { return r.Board.DigitalWrite(pin, level) })
}

// AnalogWrite retries Board.AnalogWrite.
func (r *Retry) AnalogWrite(pin, level int) error {
	return r.do(func() error { return r.Board.AnalogWrite(pin, level) })
}

// ReportDigital retries Board.ReportDigital.
func (r *Retry) ReportDigital(pin, state int) error {
	return r.do(func() error { return r.Board.ReportDigital(pin, state) })
}

// ReportAnalog retries Board.ReportAnalog.
func (r *Retry) ReportAnalog(pin, state int) error {
	return r.do(func() error { return r.Board.ReportAnalog(pin, state) })
}

// QueryFirmware retries Board.QueryFirmware.
func (r *Retry) QueryFirmware() error {
	return r.do(r.Board.QueryFirmware)
}

// QueryCapabilities retries Board.QueryCapabilities.
func (r *Retry) QueryCapabilities() error {
	return r.do(r.Board.QueryCapabilities)
}

// QueryAnalogMapping retries Board.QueryAnalogMapping.
func (r *Retry) QueryAnalogMapping() error {
	return r.do(r.Board.QueryAnalogMapping)
}

// QueryPinState retries Board.QueryPinState.
func (r *Retry) QueryPinState(pin int) error {
	return r.do(func() error { return r.Board.QueryPinState(pin) })
}

// I2CConfig retries Board.I2CConfig.
func (r *Retry) I2CConfig(delay int) error {
	return r.do(func() error { return r.Board.I2CConfig(delay) })
}

// I2CRead retries Board.I2CRead.
func (r *Retry) I2CRead(address, size int) error {
	return r.do(func() error { return r.Board.I2CRead(address, size) })
}

// I2CWrite retries Board.I2CWrite.
func (r *Retry) I2CWrite(address int, data []byte) error {
	return r.do(func() error { return r.Board.I2CWrite(address, data) })
}

// Reset retries Board.Reset.
func (r *Retry) Reset() error {
	return r.do(r.Board.Reset)
}

// ReadAndDecode retries Board.ReadAndDecode and returns the tag of the
// message that was finally decoded.
func (r *Retry) ReadAndDecode() (Message, error) {
	var msg Message
	err := r.do(func() error {
		var err error
		msg, err = r.Board.ReadAndDecode()
		return err
	})
	return msg, err
}
