//go:build tinygo

package core

import "sync/atomic"

var (
	systemTicksValue uint32
	tickSource       func() uint32
)

// SetTickSource installs a free-running hardware counter used for
// timestamps. Safe to read from interrupt context.
func SetTickSource(src func() uint32) {
	tickSource = src
}

// getSystemTicks returns the current system ticks
func getSystemTicks() uint32 {
	if src := tickSource; src != nil {
		return src()
	}
	return atomic.LoadUint32(&systemTicksValue)
}

// setSystemTicks sets the system ticks
func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicksValue, ticks)
}
