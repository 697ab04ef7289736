//go:build rp2040 || rp2350

package main

import (
	"machine"

	"softi2c/core"
)

// gpioCapture turns pin-change interrupts on SDA and SCL into the
// capture status word. The two pins play the role of two capture
// channels; the bank interrupt serializes their callbacks.
type gpioCapture struct {
	src     core.IRQSource
	sda     machine.Pin
	scl     machine.Pin
	flags   core.EdgeFlags
	status  core.EdgeStatus
	sdaHigh bool
	sclHigh bool
	enabled bool
}

func newGPIOCapture(src core.IRQSource, sda, scl machine.Pin) *gpioCapture {
	return &gpioCapture{src: src, sda: sda, scl: scl}
}

func (c *gpioCapture) ConfigureCapture(sdaCh, sclCh core.CaptureChannel) core.EdgeFlags {
	c.flags = core.BindCaptureChannels(sdaCh, sclCh)
	c.sdaHigh = c.sda.Get()
	c.sclHigh = c.scl.Get()
	c.status = 0

	c.sda.SetInterrupt(machine.PinToggle, c.onSDA)
	c.scl.SetInterrupt(machine.PinToggle, c.onSCL)
	return c.flags
}

func (c *gpioCapture) onSDA(p machine.Pin) {
	level := p.Get()
	if level == c.sdaHigh {
		// Pulse shorter than the interrupt latency; nothing to report
		return
	}
	c.sdaHigh = level
	if level {
		c.latch(c.flags.SDARise)
	} else {
		c.latch(c.flags.SDAFall)
	}
}

func (c *gpioCapture) onSCL(p machine.Pin) {
	level := p.Get()
	if level == c.sclHigh {
		return
	}
	c.sclHigh = level
	if level {
		c.latch(c.flags.SCLRise)
	} else {
		c.latch(c.flags.SCLFall)
	}
}

func (c *gpioCapture) latch(bit core.EdgeStatus) {
	c.status |= bit
	if c.enabled {
		core.DispatchIRQ(c.src)
	}
}

func (c *gpioCapture) TakeStatus() core.EdgeStatus {
	state := core.EnterCritical()
	s := c.status
	c.status = 0
	core.ExitCritical(state)
	return s
}

func (c *gpioCapture) EnableIRQ() {
	c.enabled = true
}

func (c *gpioCapture) DisableIRQ() {
	c.enabled = false
}
