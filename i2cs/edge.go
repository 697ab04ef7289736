package i2cs

// HandleInterrupt is the capture interrupt entry point, called once per
// detected edge.
//
// The status word is read and cleared in one step; an edge latched after
// that read raises the interrupt again. Only one edge is acted upon per
// call, in priority order SCL fall, SCL rise, SDA fall, SDA rise. Two
// different edges latched within the same dispatch cannot be told apart
// in time order, so the lower priority one is dropped; at supported bus
// speeds SCL and SDA never change that close together.
func (s *Slave) HandleInterrupt() {
	status := s.capture.TakeStatus()

	switch {
	case status&s.flags.SCLFall != 0:
		if s.started {
			s.clockEdge(false)
		}
	case status&s.flags.SCLRise != 0:
		if s.started {
			s.clockEdge(true)
		}
	case status&s.flags.SDAFall != 0:
		// SDA only carries meaning while SCL is high; data bits are
		// sampled on SCL edges
		if s.scl.Get() {
			s.busStart()
		}
	case status&s.flags.SDARise != 0:
		if s.scl.Get() {
			s.busStop()
		}
	}
}
