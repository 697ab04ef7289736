// Package serial opens the board's trace port on the host.
package serial

import (
	"errors"
	"io"
	"time"
)

// DefaultBaud matches the firmware's default trace.baud
const DefaultBaud = 115200

// ErrNoDevice is returned by Open when no device path is configured
var ErrNoDevice = errors.New("no serial device given")

// Port is an open trace connection. Tests substitute pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush discards input buffered before the monitor attached
	Flush() error

	// Device returns the path the port was opened on
	Device() string
}

// Config selects the device and line settings. Baud only matters for
// the UART trace ports; USB CDC ignores it.
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration // 0 blocks until data arrives
}

// DefaultConfig returns settings matching the firmware defaults. The
// read timeout lets the monitor notice Close while the board is quiet.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100 * time.Millisecond,
	}
}
