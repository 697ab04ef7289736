//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// usbWriter is the USB CDC port TinyGo exposes as machine.Serial
type usbWriter struct{}

func openUSB() usbWriter {
	machine.Serial.Configure(machine.UARTConfig{})
	return usbWriter{}
}

func (usbWriter) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}
