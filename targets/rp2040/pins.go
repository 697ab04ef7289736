//go:build rp2040 || rp2350

package main

import (
	"device/rp"
	"machine"
	"runtime/volatile"

	"softi2c/core"
)

// openDrainPin emulates an open-drain output on a push-pull GPIO. The pad
// and SIO function are set up once; the output latch is held at 0 and the
// edge handler only flips the output enable with one SIO set/clear write.
type openDrainPin struct {
	pin   machine.Pin
	mask  uint32
	oeSet *volatile.Register32
	oeClr *volatile.Register32
}

// DriveLow enables the output; the latch is already 0
func (p *openDrainPin) DriveLow() {
	p.oeSet.Set(p.mask)
}

// ReleaseHigh disables the output; the bus pull-up (or the internal one,
// for short bench wiring) pulls the line high
func (p *openDrainPin) ReleaseHigh() {
	p.oeClr.Set(p.mask)
}

func (p *openDrainPin) Get() bool {
	return p.pin.Get()
}

// rpPinFactory implements core.LinePinFactory
type rpPinFactory struct{}

func (rpPinFactory) OpenDrain(pin core.GPIOPin) core.LinePin {
	hi, mask := pin.BankMask()
	p := &openDrainPin{
		pin:   machine.Pin(pin),
		mask:  mask,
		oeSet: &rp.SIO.GPIO_OE_SET,
		oeClr: &rp.SIO.GPIO_OE_CLR,
	}
	outClr := &rp.SIO.GPIO_OUT_CLR
	if hi {
		p.oeSet = &rp.SIO.GPIO_HI_OE_SET
		p.oeClr = &rp.SIO.GPIO_HI_OE_CLR
		outClr = &rp.SIO.GPIO_HI_OUT_CLR
	}

	// Selects the SIO function with the pull-up; never reconfigured after
	p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	p.ReleaseHigh()
	outClr.Set(p.mask)
	return p
}
