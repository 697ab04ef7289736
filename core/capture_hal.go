package core

// CaptureChannel is a timer channel number, 1 through MaxCaptureChannel.
type CaptureChannel uint8

// MaxCaptureChannel is the number of capture channels on one timer
const MaxCaptureChannel = 4

// EdgeStatus is a snapshot of the capture timer's interrupt-status word.
type EdgeStatus uint32

// Status word layout. Each channel owns one bit in the rising-edge
// (primary compare) group and one bit in the falling-edge (secondary
// compare) group.
const (
	CaptureRiseShift = 5
	CaptureFallShift = 13
)

// EdgeFlags records which status bit corresponds to each monitored edge.
type EdgeFlags struct {
	SDARise EdgeStatus
	SDAFall EdgeStatus
	SCLRise EdgeStatus
	SCLFall EdgeStatus
}

// All returns the interrupt-enable mask covering all four edges
func (f EdgeFlags) All() EdgeStatus {
	return f.SDARise | f.SDAFall | f.SCLRise | f.SCLFall
}

// EdgeCapture is one hardware timer with two channels capturing both
// edges of SDA and SCL.
type EdgeCapture interface {
	// ConfigureCapture sets up rising (primary) and falling (secondary)
	// capture on both channels, arms the four interrupt-enable bits and
	// returns the status bit for each edge
	ConfigureCapture(sda, scl CaptureChannel) EdgeFlags

	// TakeStatus reads the interrupt-status word and clears it.
	// Edges latched after the read are kept for the next call.
	TakeStatus() EdgeStatus

	// EnableIRQ and DisableIRQ gate the timer's interrupt line
	EnableIRQ()
	DisableIRQ()
}

// ChannelMask returns the per-channel bit used in each status group
func ChannelMask(ch CaptureChannel) EdgeStatus {
	if ch < 1 || ch > MaxCaptureChannel {
		panic("capture channel out of range")
	}
	return 1 << (ch - 1)
}

// BindCaptureChannels computes the status bits for SDA and SCL.
// SDA and SCL must use different channels; aliasing them is a wiring
// error and panics before the bus is ever enabled.
func BindCaptureChannels(sda, scl CaptureChannel) EdgeFlags {
	if sda == scl {
		panic("SDA and SCL share a capture channel")
	}
	sdaMask := ChannelMask(sda)
	sclMask := ChannelMask(scl)
	return EdgeFlags{
		SDARise: sdaMask << CaptureRiseShift,
		SDAFall: sdaMask << CaptureFallShift,
		SCLRise: sclMask << CaptureRiseShift,
		SCLFall: sclMask << CaptureFallShift,
	}
}
