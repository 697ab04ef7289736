package i2cs

import (
	"softi2c/core"
)

// Edge indices within one byte frame. After START the first SCL edge is
// a falling one, so even indices are falling edges and odd ones rising:
// data bits are sampled on 1,3..15 and shifted out on 0,2..14, the ACK
// bit is driven at 16 and clocked at 17.
const (
	ackEdge      = 16
	lastDataEdge = ackEdge - 1
	lastEdge     = ackEdge + 1
)

const readBit = 0x01

func (s *Slave) busStart() {
	s.restarted = s.started
	s.edge = 0
	s.needAck = false
	s.active = 0
	s.masterNack = false
	s.started = true
	s.state = StateAddress

	if s.restarted {
		core.RecordEvent(core.EvtRepeatedStart, 0, 0)
	} else {
		core.RecordEvent(core.EvtStart, 0, 0)
	}
}

func (s *Slave) busStop() {
	if !s.started {
		return
	}
	s.state = StateIdle
	s.started = false
	s.restarted = false
	s.masterNack = false
	s.sda.ReleaseHigh()
	s.stats.Stops++
	core.RecordEvent(core.EvtStop, 0, 0)
	s.handler.Stop()
}

// clockEdge advances the bit/byte state machine by one SCL edge
func (s *Slave) clockEdge(rise bool) {
	n := s.edge

	if n == 0 && s.state != StateTransmitting {
		// End our ACK pulse and get ready to sample
		s.sda.ReleaseHigh()
		s.active = 0
	}

	if n == ackEdge {
		if s.needAck {
			s.sda.DriveLow()
			s.needAck = false
		} else {
			s.sda.ReleaseHigh()
		}
	}

	if n < ackEdge && rise && s.state != StateTransmitting {
		s.active <<= 1
		if s.sda.Get() {
			s.active |= 1
		}
	}

	if n == lastDataEdge {
		s.finishByte()
	}

	if s.state == StateTransmitting {
		s.transmitEdge(n, rise)
	}

	if n == lastEdge {
		s.edge = 0
	} else {
		s.edge++
	}
}

// finishByte runs on the last data edge, after bit 0 was sampled
func (s *Slave) finishByte() {
	switch s.state {
	case StateReceiving:
		s.needAck = s.handler.DataReceived(s.active)
		s.stats.BytesReceived++
		var flags uint8
		if s.needAck {
			flags = core.EvfAck
		} else {
			s.stats.Nacks++
		}
		core.RecordEvent(core.EvtByteReceived, s.active, flags)

	case StateAddress:
		read := s.active&readBit != 0
		if s.active>>1 != s.address {
			// Not for us: drop off the bus until the next START
			s.state = StateIdle
			s.started = false
			s.restarted = false
			s.stats.AddressMismatches++
			core.RecordEvent(core.EvtAddressMismatch, s.active, 0)
			return
		}
		s.needAck = true
		s.stats.Transactions++
		var flags uint8
		if read {
			flags = core.EvfRead
		}
		core.RecordEvent(core.EvtAddressMatch, s.active, flags)
		s.handler.AddressMatch(read, s.restarted)
		if read {
			s.state = StateTransmitting
		} else {
			s.state = StateReceiving
		}
	}
}

// transmitEdge shifts the pending byte out MSB first on falling edges and
// samples the master's ACK bit on the rising ACK clock
func (s *Slave) transmitEdge(n uint8, rise bool) {
	if s.masterNack {
		// Master is done reading; keep SDA free for its STOP or START
		if n == 0 {
			s.sda.ReleaseHigh()
		}
		return
	}

	if n == 0 {
		s.tx = s.handler.TransmitByte()
		s.stats.BytesTransmitted++
		core.RecordEvent(core.EvtByteTransmitted, s.tx, 0)
	}

	if n < ackEdge && !rise {
		if s.tx&0x80 != 0 {
			s.sda.ReleaseHigh()
		} else {
			s.sda.DriveLow()
		}
		s.tx <<= 1
	}

	if n == lastEdge && rise && s.sda.Get() {
		s.masterNack = true
		s.stats.MasterNacks++
		core.RecordEvent(core.EvtMasterNack, 0, 0)
	}
}
