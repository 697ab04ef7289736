package serial

import (
	"fmt"

	"github.com/tarm/serial"
)

// nativePort is a tarm/serial port remembering its device path
type nativePort struct {
	*serial.Port
	device string
}

// Open opens the device described by cfg
func Open(cfg Config) (Port, error) {
	if cfg.Device == "" {
		return nil, ErrNoDevice
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return &nativePort{Port: port, device: cfg.Device}, nil
}

func (p *nativePort) Device() string {
	return p.device
}
