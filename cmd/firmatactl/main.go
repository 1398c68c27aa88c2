// firmatactl connects to a Firmata board, prints its identity and pin
// capabilities, and optionally streams decoded telemetry until
// interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.bug.st/serial"

	"github.com/gofirmata/gofirmata/internal/usbtrans"
	"github.com/gofirmata/gofirmata/pkg/firmata"
)

func main() {
	configPath := flag.String("config", "firmatactl.toml", "path to the TOML config file")
	watch := flag.Bool("watch", false, "keep decoding and printing incoming messages")
	flag.Parse()

	if err := run(*configPath, *watch); err != nil {
		slog.Error("firmatactl failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string, watch bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("parse log_level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	conn, err := openTransport(cfg)
	if err != nil {
		return err
	}

	board, err := firmata.New(conn, firmata.WithLogger(logger))
	if err != nil {
		conn.Close()
		return fmt.Errorf("initialize board: %w", err)
	}
	defer board.Close()

	fmt.Printf("firmware name     %s\n", board.FirmwareName())
	fmt.Printf("firmware version  %s\n", board.FirmwareVersion())
	fmt.Printf("protocol version  %s\n", board.ProtocolVersion())
	fmt.Printf("pins              %d\n", len(board.Pins()))
	for i, pin := range board.Pins() {
		fmt.Printf("  pin %2d  mode=%-8s modes=", i, pin.Mode)
		for j, c := range pin.Modes {
			if j > 0 {
				fmt.Print(",")
			}
			fmt.Printf("%s:%d", c.Mode, c.Resolution)
		}
		fmt.Println()
	}

	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	// A blocked read only returns once the transport is closed.
	go func() {
		<-ctx.Done()
		board.Close()
	}()

	// The retry budget must stay short: once the signal handler closes
	// the transport, every attempt fails, and the loop only sees the
	// error (and the cancelled context) after the policy is exhausted.
	retrier := firmata.NewRetry(board)
	retrier.NewBackOff = watchBackOff
	for ctx.Err() == nil {
		msg, err := retrier.ReadAndDecode()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return err
		}

		switch msg {
		case firmata.MessageAnalog, firmata.MessageDigital, firmata.MessagePinState:
			fmt.Printf("%s\n", msg)
		case firmata.MessageI2CReply:
			if reply, ok := board.TakeI2CReply(); ok {
				fmt.Printf("i2c reply addr=0x%02X reg=0x%02X data=% X\n",
					reply.Address, reply.Register, reply.Data)
			}
		}
	}

	return nil
}

func watchBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 2 * time.Second
	return bo
}

func openTransport(cfg config) (firmata.Transport, error) {
	switch cfg.Transport {
	case "usb":
		return usbtrans.Open(cfg.USBVendorID, cfg.USBProductID)
	default:
		port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
		if err != nil {
			return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
		}
		return port, nil
	}
}
