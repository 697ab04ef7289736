package core

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// BankMask splits pin into the 32-bit SIO bank it lives in and its bit
// within that bank. Pins 32 and up use the high bank registers.
func (p GPIOPin) BankMask() (hi bool, mask uint32) {
	if p >= 32 {
		return true, 1 << (p - 32)
	}
	return false, 1 << p
}

// LinePin is one open-drain bus line as seen by the slave engine.
// Platform-specific implementations handle the actual mode switching.
type LinePin interface {
	// DriveLow switches the line to output mode and forces it to 0
	DriveLow()

	// ReleaseHigh stops driving the line. The pull-up (or the other party)
	// determines the observed level; the pin itself never drives a 1.
	// The output latch is left at 0 on release rather than written to 1.
	ReleaseHigh()

	// Get reads the observed line level
	Get() bool
}

// LinePinFactory builds open-drain line pins for a target.
type LinePinFactory interface {
	// OpenDrain configures pin for open-drain emulation, initially released
	OpenDrain(pin GPIOPin) LinePin
}

// Global singleton used by target code.
var linePinFactory LinePinFactory

// SetLinePinFactory is called by target-specific code to register its pin factory.
func SetLinePinFactory(f LinePinFactory) {
	linePinFactory = f
}

// MustLinePins returns the configured factory or panics if missing.
func MustLinePins() LinePinFactory {
	if linePinFactory == nil {
		panic("line pin factory not configured")
	}
	return linePinFactory
}
