package sim

import (
	"softi2c/core"
)

// maxRedispatch bounds back-to-back interrupt entries caused by edges the
// handler itself produces.
const maxRedispatch = 16

// Capture simulates an edge-capture timer. Line changes latch status
// bits; while enabled, the timer's interrupt is delivered through
// core.DispatchIRQ on the caller's goroutine, the same way a vector
// would preempt the main loop. Edges produced by the handler itself are
// latched and delivered after it returns.
type Capture struct {
	src      core.IRQSource
	channels [core.MaxCaptureChannel + 1]*Line
	armed    core.EdgeStatus
	status   core.EdgeStatus
	enabled  bool
	inIRQ    bool

	// Dispatches counts interrupt entries
	Dispatches int
	// Overruns counts edges latched while the same bit was still pending
	Overruns int
}

var _ core.EdgeCapture = (*Capture)(nil)

// NewCapture returns a timer that raises interrupt source src
func NewCapture(src core.IRQSource) *Capture {
	return &Capture{src: src}
}

// Attach wires line to capture channel ch
func (c *Capture) Attach(ch core.CaptureChannel, l *Line) {
	mask := core.ChannelMask(ch)
	c.channels[ch] = l
	l.Observe(func(l *Line) {
		var bit core.EdgeStatus
		if l.Rising() {
			bit = mask << core.CaptureRiseShift
		} else {
			bit = mask << core.CaptureFallShift
		}
		if c.armed&bit == 0 {
			return
		}
		if c.status&bit != 0 {
			c.Overruns++
		}
		c.status |= bit
		c.service()
	})
}

// ConfigureCapture arms both edges of both channels
func (c *Capture) ConfigureCapture(sda, scl core.CaptureChannel) core.EdgeFlags {
	flags := core.BindCaptureChannels(sda, scl)
	if c.channels[sda] == nil || c.channels[scl] == nil {
		panic("sim: capture channel has no line attached")
	}
	c.armed = flags.All()
	c.status = 0
	return flags
}

// TakeStatus returns and clears the latched edges
func (c *Capture) TakeStatus() core.EdgeStatus {
	s := c.status
	c.status = 0
	return s
}

// Pending returns the latched edges without clearing them
func (c *Capture) Pending() core.EdgeStatus {
	return c.status
}

// EnableIRQ enables the interrupt and delivers anything already pending
func (c *Capture) EnableIRQ() {
	c.enabled = true
	c.service()
}

// DisableIRQ masks the interrupt; edges keep latching
func (c *Capture) DisableIRQ() {
	c.enabled = false
}

// Enabled reports whether the interrupt is enabled
func (c *Capture) Enabled() bool {
	return c.enabled
}

func (c *Capture) service() {
	if !c.enabled || c.inIRQ {
		return
	}
	c.inIRQ = true
	defer func() { c.inIRQ = false }()

	for i := 0; i < maxRedispatch && c.enabled && c.status != 0; i++ {
		c.Dispatches++
		if !core.DispatchIRQ(c.src) {
			// Nothing installed: behave like an unhandled vector and drop
			c.status = 0
			return
		}
	}
}
