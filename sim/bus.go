package sim

import (
	"softi2c/core"
)

// Bus bundles the two lines and the capture timer watching them
type Bus struct {
	SDA     *Line
	SCL     *Line
	Capture *Capture

	SDAChannel core.CaptureChannel
	SCLChannel core.CaptureChannel
}

// NewBus creates released SDA and SCL lines and a capture timer raising
// src with SDA on sdaCh and SCL on sclCh.
func NewBus(src core.IRQSource, sdaCh, sclCh core.CaptureChannel) *Bus {
	b := &Bus{
		SDA:        NewLine("SDA"),
		SCL:        NewLine("SCL"),
		Capture:    NewCapture(src),
		SDAChannel: sdaCh,
		SCLChannel: sclCh,
	}
	b.Capture.Attach(sdaCh, b.SDA)
	b.Capture.Attach(sclCh, b.SCL)
	return b
}

// SlavePins returns a fresh pair of pins for a slave device
func (b *Bus) SlavePins() (sda, scl *Pin) {
	return b.SDA.NewPin(), b.SCL.NewPin()
}

// Idle reports whether both lines are released high
func (b *Bus) Idle() bool {
	return b.SDA.Hi() && b.SCL.Hi()
}
