// Package app holds the demo register device served by the software
// slave: the first byte written after an address match selects a
// register, following bytes are stored, and reads return a fixed table
// starting at the selected register.
package app

import (
	"sync/atomic"

	"softi2c/core"
	"softi2c/i2cs"
)

// RxBufferSize is the number of bytes kept per write; further bytes are NACKed
const RxBufferSize = 8

// TxTable is the read-only register file
var TxTable = [8]byte{0xA0, 0xA1, 0xBC, 0xCC, 0xDE, 0x12, 0x68, 0x57}

// Transaction is one completed write handed to task context
type Transaction struct {
	Register uint8
	Data     []byte
}

// Demo implements i2cs.Handler. Callbacks run in interrupt context and
// only touch fixed arrays; the completed transaction is published to
// task context through an atomic flag and logged by Flush.
type Demo struct {
	register uint8
	rx       [RxBufferSize]byte
	rxLen    uint8
	txIndex  uint8

	// Last completed transaction, owned by the interrupt while pending == 0
	pending uint32
	doneReg uint8
	doneRx  [RxBufferSize]byte
	doneLen uint8
	dropped uint32
}

var _ i2cs.Handler = (*Demo)(nil)

// NewDemo creates the demo device with register 0 selected
func NewDemo() *Demo {
	return &Demo{}
}

// AddressMatch starts a fresh write on every match, including a
// repeated START, so each write selects its own register
func (d *Demo) AddressMatch(read, restart bool) {
	d.rxLen = 0
	d.txIndex = d.register
}

func (d *Demo) DataReceived(b byte) bool {
	if d.rxLen >= RxBufferSize {
		return false
	}
	if d.rxLen == 0 {
		d.register = b
	}
	d.rx[d.rxLen] = b
	d.rxLen++
	return true
}

func (d *Demo) TransmitByte() byte {
	b := TxTable[d.txIndex%uint8(len(TxTable))]
	d.txIndex++
	return b
}

func (d *Demo) Stop() {
	if atomic.LoadUint32(&d.pending) != 0 {
		// Task context has not caught up
		atomic.AddUint32(&d.dropped, 1)
		return
	}
	d.doneReg = d.register
	d.doneLen = d.rxLen
	copy(d.doneRx[:], d.rx[:d.rxLen])
	atomic.StoreUint32(&d.pending, 1)
}

// Register returns the currently selected register
func (d *Demo) Register() uint8 {
	return d.register
}

// Take returns the last completed transaction, if one is waiting, and
// releases the slot for the next STOP.
func (d *Demo) Take() (Transaction, bool) {
	if atomic.LoadUint32(&d.pending) == 0 {
		return Transaction{}, false
	}
	t := Transaction{
		Register: d.doneReg,
		Data:     append([]byte(nil), d.doneRx[:d.doneLen]...),
	}
	atomic.StoreUint32(&d.pending, 0)
	return t, true
}

// Dropped counts transactions completed while the previous one was
// still waiting for Take
func (d *Demo) Dropped() uint32 {
	return atomic.LoadUint32(&d.dropped)
}

// Flush logs the last completed transaction from task context
func (d *Demo) Flush() bool {
	t, ok := d.Take()
	if !ok {
		return false
	}
	core.DebugPrintln("[DEMO] STOP register: " + core.Itoa(int(t.Register)))
	for _, line := range core.HexDump(t.Data) {
		core.DebugPrintln("[DEMO] " + line)
	}
	return true
}
