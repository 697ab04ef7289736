// Package config loads the JSON description of one slave instance.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Capture backends
const (
	BackendGPIO = "gpio" // pin-change interrupts on both lines
	BackendPIO  = "pio"  // PIO state machine watching both lines
)

// Trace ports
const (
	PortUSB   = "usb"
	PortUART0 = "uart0"
	PortUART1 = "uart1"
)

// MaxPin is the highest GPIO number accepted
const MaxPin = 47

var (
	ErrInvalidAddress  = errors.New("address must be 7 bits")
	ErrSameChannel     = errors.New("SDA and SCL must use different capture channels")
	ErrChannelRange    = errors.New("capture channel must be 1..4")
	ErrUnknownBackend  = errors.New("unknown capture backend")
	ErrSamePin         = errors.New("SDA and SCL must use different pins")
	ErrPinRange        = errors.New("pin number out of range")
	ErrPinsNotAdjacent = errors.New("pio backend needs SCL on the pin after SDA")
	ErrUnknownPort     = errors.New("unknown trace port")
)

// Config describes one software slave and its trace output
type Config struct {
	Address    uint8  `json:"address"`
	SDAPin     uint8  `json:"sda_pin"`
	SCLPin     uint8  `json:"scl_pin"`
	SDAChannel uint8  `json:"sda_channel"`
	SCLChannel uint8  `json:"scl_channel"`
	Backend    string `json:"backend"`

	Trace TraceConfig `json:"trace"`
}

// TraceConfig controls the bus event stream
type TraceConfig struct {
	Enabled bool   `json:"enabled"`
	Port    string `json:"port"`
	Baud    uint32 `json:"baud"`
	FlushMS uint32 `json:"flush_ms"`
}

// Default returns the stock configuration: address 0x37 with SDA on
// capture channel 1 and SCL on channel 2.
func Default() *Config {
	return &Config{
		Address:    0x37,
		SDAPin:     1,
		SCLPin:     3,
		SDAChannel: 1,
		SCLChannel: 2,
		Backend:    BackendGPIO,
		Trace: TraceConfig{
			Enabled: true,
			Port:    PortUSB,
			Baud:    115200,
			FlushMS: 10,
		},
	}
}

// Load parses JSON over the defaults, so omitted fields keep their
// default value, then validates the result.
func Load(jsonData []byte) (*Config, error) {
	config := Default()

	if err := json.Unmarshal(jsonData, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults replaces explicit zero values that have no meaning
func applyDefaults(config *Config) {
	if config.Backend == "" {
		config.Backend = BackendGPIO
	}
	if config.Trace.Port == "" {
		config.Trace.Port = PortUSB
	}
	if config.Trace.Baud == 0 {
		config.Trace.Baud = 115200
	}
	if config.Trace.FlushMS == 0 {
		config.Trace.FlushMS = 10
	}
}

// Validate checks the configuration for wiring mistakes
func (c *Config) Validate() error {
	if c.Address > 0x7F {
		return fmt.Errorf("%w: %#x", ErrInvalidAddress, c.Address)
	}
	for _, ch := range []uint8{c.SDAChannel, c.SCLChannel} {
		if ch < 1 || ch > 4 {
			return fmt.Errorf("%w: %d", ErrChannelRange, ch)
		}
	}
	if c.SDAChannel == c.SCLChannel {
		return ErrSameChannel
	}
	if c.SDAPin > MaxPin || c.SCLPin > MaxPin {
		return ErrPinRange
	}
	if c.SDAPin == c.SCLPin {
		return ErrSamePin
	}
	switch c.Backend {
	case BackendGPIO:
	case BackendPIO:
		if c.SCLPin != c.SDAPin+1 {
			return ErrPinsNotAdjacent
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	switch c.Trace.Port {
	case PortUSB, PortUART0, PortUART1:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPort, c.Trace.Port)
	}
	return nil
}
