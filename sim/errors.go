package sim

import "errors"

var (
	// ErrNACK is returned when a written byte is not acknowledged
	ErrNACK = errors.New("NACK received")

	// ErrNoSuchDevice is returned when no slave acknowledges an address
	ErrNoSuchDevice = errors.New("no such device")

	// ErrBusBusy is returned when a START finds a line held low
	ErrBusBusy = errors.New("bus busy")
)
