//go:build rp2040 || rp2350

package main

import (
	"device/rp"
	"machine"
	"runtime/interrupt"

	"softi2c/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildSnifferProgram samples SDA (bit 0) and SCL (bit 1) every cycle
// and pushes the pair whenever it differs from the last pushed value.
func buildSnifferProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Mov(rp2pio.MovDestISR, rp2pio.MovSrcNull).Encode(), // 0: mov isr, null
		asm.In(rp2pio.InSrcPins, 2).Encode(),                   // 1: in pins, 2
		asm.Mov(rp2pio.MovDestX, rp2pio.MovSrcISR).Encode(),    // 2: mov x, isr
		asm.Jmp(5, rp2pio.JmpXNotEqualY).Encode(),              // 3: jmp x!=y, 5
		asm.Jmp(0, rp2pio.JmpAlways).Encode(),                  // 4: jmp 0
		asm.Mov(rp2pio.MovDestY, rp2pio.MovSrcX).Encode(),      // 5: mov y, x
		asm.Push(false, false).Encode(),                        // 6: push noblock
		// .wrap
	}
}

const (
	snifferOrigin = 0 // jump targets are absolute
	snifferSM     = 0
)

// pioCapture watches both lines with a PIO state machine. SCL must be
// the pin after SDA. Every FIFO word is one level change, so edges reach
// the engine in order even when the CPU falls behind by a few edges.
type pioCapture struct {
	src     core.IRQSource
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	sda     machine.Pin
	flags   core.EdgeFlags
	status  core.EdgeStatus
	last    uint32
	enabled bool
}

// activeSniffer is reached from the PIO vector, which cannot carry a
// receiver
var activeSniffer *pioCapture

func newPIOCapture(src core.IRQSource, sda machine.Pin) *pioCapture {
	return &pioCapture{
		src: src,
		pio: rp2pio.PIO0,
		sm:  rp2pio.PIO0.StateMachine(snifferSM),
		sda: sda,
	}
}

func (c *pioCapture) ConfigureCapture(sdaCh, sclCh core.CaptureChannel) core.EdgeFlags {
	c.flags = core.BindCaptureChannels(sdaCh, sclCh)

	c.sm.TryClaim()
	program := buildSnifferProgram()
	offset, err := c.pio.AddProgram(program, snifferOrigin)
	if err != nil {
		panic("pio: no room for edge sniffer")
	}

	// Pins stay under SIO control: the slave drives SDA itself and the
	// state machine only reads
	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(c.sda)
	cfg.SetInShift(false, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(1, 0)
	c.sm.Init(offset, cfg)

	c.last = 0
	if c.sda.Get() {
		c.last |= 1
	}
	if (c.sda + 1).Get() {
		c.last |= 2
	}
	c.status = 0

	activeSniffer = c
	// RX FIFO not empty for this state machine on PIO0 IRQ 0
	rp.PIO0.IRQ0_INTE.SetBits(1 << snifferSM)
	interrupt.New(rp.IRQ_PIO0_IRQ_0, handleSnifferInterrupt).Enable()

	c.sm.SetEnabled(true)
	return c.flags
}

func handleSnifferInterrupt(interrupt.Interrupt) {
	if c := activeSniffer; c != nil {
		c.drain()
	}
}

// drain converts every queued sample into edge bits and delivers them one
// sample at a time
func (c *pioCapture) drain() {
	for !c.sm.IsRxFIFOEmpty() {
		sample := c.sm.RxGet() & 3
		changed := sample ^ c.last
		c.last = sample

		var s core.EdgeStatus
		if changed&1 != 0 {
			if sample&1 != 0 {
				s |= c.flags.SDARise
			} else {
				s |= c.flags.SDAFall
			}
		}
		if changed&2 != 0 {
			if sample&2 != 0 {
				s |= c.flags.SCLRise
			} else {
				s |= c.flags.SCLFall
			}
		}
		if s == 0 {
			continue
		}
		c.status |= s
		if c.enabled {
			core.DispatchIRQ(c.src)
		}
	}
}

func (c *pioCapture) TakeStatus() core.EdgeStatus {
	state := core.EnterCritical()
	s := c.status
	c.status = 0
	core.ExitCritical(state)
	return s
}

func (c *pioCapture) EnableIRQ() {
	c.enabled = true
}

func (c *pioCapture) DisableIRQ() {
	c.enabled = false
}
