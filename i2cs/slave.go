// Package i2cs implements a software I2C slave driven by edge-capture
// interrupts.
//
// A general-purpose timer captures both edges of SDA and SCL. Each capture
// interrupt is routed through HandleInterrupt, which detects START/STOP on
// SDA edges and advances a per-byte SCL edge counter on SCL edges. All
// protocol decisions are keyed on that counter; there is no notion of
// elapsed time, so any SCL rate the capture hardware can resolve works.
//
// SDA is driven by open-drain emulation through core.LinePin.
package i2cs

import (
	"softi2c/core"
)

// State is the protocol state of the slave
type State uint8

const (
	StateIdle         State = iota // waiting for START
	StateAddress                   // shifting in the address byte
	StateReceiving                 // master writes, slave samples SDA
	StateTransmitting              // master reads, slave drives SDA
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAddress:
		return "address"
	case StateReceiving:
		return "receiving"
	case StateTransmitting:
		return "transmitting"
	default:
		return "invalid"
	}
}

// Config describes one physical slave instance
type Config struct {
	// Address is the 7-bit slave address, right aligned
	Address uint8

	SDA core.LinePin
	SCL core.LinePin

	// Capture is the timer monitoring both lines
	Capture    core.EdgeCapture
	SDAChannel core.CaptureChannel
	SCLChannel core.CaptureChannel
}

// Slave is one software I2C slave. It is owned by the interrupt that
// calls HandleInterrupt; task context may only call Start, Stop, Status
// and Stats.
type Slave struct {
	address uint8
	sda     core.LinePin
	scl     core.LinePin
	capture core.EdgeCapture
	flags   core.EdgeFlags
	handler Handler

	// Everything below is mutated only from HandleInterrupt
	edge       uint8 // SCL edges since the start of the current byte, 0..17
	state      State
	needAck    bool // latched at the last data edge, driven at the ACK edge
	started    bool
	restarted  bool
	masterNack bool // master NACKed during a read, stop shifting out
	active     uint8
	tx         uint8

	enabled bool
	stats   Stats
}

// Stats counts bus activity since New. Counters wrap.
type Stats struct {
	Transactions      uint32 // address matches
	Stops             uint32
	AddressMismatches uint32
	BytesReceived     uint32
	BytesTransmitted  uint32
	Nacks             uint32 // received bytes the handler refused
	MasterNacks       uint32
}

// Status is a diagnostic snapshot of the engine
type Status struct {
	State     State
	EdgeCount uint8
	Started   bool
	Restarted bool
	NeedAck   bool
	Enabled   bool
}

// New binds the capture channels and returns an idle slave with its
// interrupt disabled. Wiring mistakes panic: they cannot be recovered at
// run time.
func New(cfg Config, h Handler) *Slave {
	if cfg.Address > 0x7F {
		panic("i2cs: address is wider than 7 bits")
	}
	if cfg.SDA == nil || cfg.SCL == nil {
		panic("i2cs: SDA and SCL pins are required")
	}
	if cfg.Capture == nil {
		panic("i2cs: capture timer is required")
	}
	if h == nil {
		panic("i2cs: handler is required")
	}

	s := &Slave{
		address: cfg.Address,
		sda:     cfg.SDA,
		scl:     cfg.SCL,
		capture: cfg.Capture,
		handler: h,
		state:   StateIdle,
	}
	// Panics on aliased or out of range channels
	core.BindCaptureChannels(cfg.SDAChannel, cfg.SCLChannel)
	s.flags = cfg.Capture.ConfigureCapture(cfg.SDAChannel, cfg.SCLChannel)
	s.sda.ReleaseHigh()
	return s
}

// Address returns the configured 7-bit address
func (s *Slave) Address() uint8 {
	return s.address
}

// Flags returns the status bits assigned to each edge
func (s *Slave) Flags() core.EdgeFlags {
	return s.flags
}

// Start discards stale capture flags, resets the protocol state and
// enables the capture interrupt.
func (s *Slave) Start() {
	s.capture.DisableIRQ()
	s.reset()
	s.sda.ReleaseHigh()
	s.capture.TakeStatus()
	s.enabled = true
	core.RecordEvent(core.EvtEnabled, s.address, 0)
	s.capture.EnableIRQ()
}

// Stop disables the capture interrupt. A transaction in flight is
// abandoned without callbacks and SDA is released.
func (s *Slave) Stop() {
	s.capture.DisableIRQ()
	s.enabled = false
	s.reset()
	s.sda.ReleaseHigh()
	core.RecordEvent(core.EvtDisabled, s.address, 0)
}

func (s *Slave) reset() {
	s.state = StateIdle
	s.edge = 0
	s.needAck = false
	s.started = false
	s.restarted = false
	s.masterNack = false
	s.active = 0
	s.tx = 0
}

// Status reads the engine state without synchronization. From task
// context the result is eventually consistent.
func (s *Slave) Status() Status {
	return Status{
		State:     s.state,
		EdgeCount: s.edge,
		Started:   s.started,
		Restarted: s.restarted,
		NeedAck:   s.needAck,
		Enabled:   s.enabled,
	}
}

// Stats returns the activity counters, eventually consistent like Status
func (s *Slave) Stats() Stats {
	return s.stats
}
