package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type config struct {
	Transport    string // "serial" or "usb"
	Port         string
	Baud         int
	USBVendorID  uint16
	USBProductID uint16
	LogLevel     string
}

func defaultConfig() config {
	return config{
		Transport: "serial",
		Port:      "/dev/ttyACM0",
		Baud:      57600,
		LogLevel:  "info",
	}
}

type fileConfig struct {
	Transport    string `toml:"transport"`
	Port         string `toml:"port"`
	Baud         int    `toml:"baud"`
	USBVendorID  string `toml:"usb_vendor_id"`
	USBProductID string `toml:"usb_product_id"`
	LogLevel     string `toml:"log_level"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("transport") {
		t := strings.TrimSpace(strings.ToLower(raw.Transport))
		if t != "serial" && t != "usb" {
			return config{}, fmt.Errorf("unknown transport %q", raw.Transport)
		}
		cfg.Transport = t
	}

	if meta.IsDefined("port") {
		cfg.Port = strings.TrimSpace(raw.Port)
	}

	if meta.IsDefined("baud") {
		if raw.Baud <= 0 {
			return config{}, fmt.Errorf("invalid baud rate %d", raw.Baud)
		}
		cfg.Baud = raw.Baud
	}

	if meta.IsDefined("usb_vendor_id") {
		id, err := parseUSBID(raw.USBVendorID)
		if err != nil {
			return config{}, fmt.Errorf("parse usb_vendor_id: %w", err)
		}
		cfg.USBVendorID = id
	}

	if meta.IsDefined("usb_product_id") {
		id, err := parseUSBID(raw.USBProductID)
		if err != nil {
			return config{}, fmt.Errorf("parse usb_product_id: %w", err)
		}
		cfg.USBProductID = id
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(strings.ToLower(raw.LogLevel))
	}

	return cfg, nil
}

// parseUSBID accepts hex IDs in the forms "0x17A4" and "17A4".
func parseUSBID(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "0x")
	id, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(id), nil
}
