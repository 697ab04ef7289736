package sim

import (
	"tinygo.org/x/drivers"
)

// Master bit-bangs an I2C master on a simulated Bus. Every line change
// is delivered synchronously, so each call returns only after all
// attached slaves have reacted.
type Master struct {
	bus  *Bus
	sda  *Pin
	scl  *Pin
	open bool // a START has been issued without a STOP

	// Acks records, for every byte written, whether it was acknowledged
	Acks []bool
}

var _ drivers.I2C = (*Master)(nil)

// NewMaster attaches a master to the bus
func (b *Bus) NewMaster() *Master {
	return &Master{
		bus: b,
		sda: b.SDA.NewPin(),
		scl: b.SCL.NewPin(),
	}
}

// Open reports whether a transaction is in progress
func (m *Master) Open() bool {
	return m.open
}

// Start issues a START, or a repeated START inside a transaction
func (m *Master) Start() error {
	if m.open {
		// SCL is low after the last ACK clock
		m.sda.ReleaseHigh()
		m.scl.ReleaseHigh()
	} else if !m.bus.Idle() {
		return ErrBusBusy
	}
	if m.bus.SDA.Lo() {
		return ErrBusBusy
	}
	m.sda.DriveLow()
	m.scl.DriveLow()
	m.open = true
	return nil
}

// Stop issues a STOP and releases both lines
func (m *Master) Stop() {
	if !m.open {
		return
	}
	m.sda.DriveLow()
	m.scl.ReleaseHigh()
	m.sda.ReleaseHigh()
	m.open = false
}

func (m *Master) writeBit(bit bool) {
	if bit {
		m.sda.ReleaseHigh()
	} else {
		m.sda.DriveLow()
	}
	m.scl.ReleaseHigh()
	m.scl.DriveLow()
}

func (m *Master) readBit() bool {
	m.sda.ReleaseHigh()
	m.scl.ReleaseHigh()
	bit := m.sda.Get()
	m.scl.DriveLow()
	return bit
}

// WriteByte shifts b out MSB first and clocks the ACK bit.
// It returns ErrNACK when no slave pulled SDA low.
func (m *Master) WriteByte(b byte) error {
	for i := 7; i >= 0; i-- {
		m.writeBit(b&(1<<uint(i)) != 0)
	}
	ack := !m.readBit()
	m.Acks = append(m.Acks, ack)
	if !ack {
		return ErrNACK
	}
	return nil
}

// ReadByte clocks in one byte and answers with ACK or NACK
func (m *Master) ReadByte(ack bool) byte {
	var b byte
	for i := 0; i < 8; i++ {
		b <<= 1
		if m.readBit() {
			b |= 1
		}
	}
	m.writeBit(!ack)
	return b
}

// Tx performs a write followed by a read with a repeated START, the way
// register-oriented drivers talk to a device. A zero length write and
// read probes the address.
func (m *Master) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 || len(r) == 0 {
		if err := m.address(addr, false); err != nil {
			return err
		}
		for _, b := range w {
			if err := m.WriteByte(b); err != nil {
				m.Stop()
				return err
			}
		}
	}
	if len(r) > 0 {
		if err := m.address(addr, true); err != nil {
			return err
		}
		for i := range r {
			r[i] = m.ReadByte(i < len(r)-1)
		}
	}
	m.Stop()
	return nil
}

func (m *Master) address(addr uint16, read bool) error {
	if err := m.Start(); err != nil {
		return err
	}
	b := byte(addr<<1) & 0xFE
	if read {
		b |= 1
	}
	if err := m.WriteByte(b); err != nil {
		m.Stop()
		return ErrNoSuchDevice
	}
	return nil
}
