//go:build !tinygo

package core

// getSystemTicks returns the manually advanced tick count (host builds)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks sets the system ticks (host builds and tests)
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}

// AdvanceTime moves the host clock forward by ticks
func AdvanceTime(ticks uint32) {
	systemTicks += ticks
}
