//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"softi2c/core"
)

// TIMERAWL is the unlatched low word of the 1MHz timer. Reading it has
// no side effects, so interrupt handlers may sample it freely.
var timerRawLow = (*volatile.Register32)(unsafe.Pointer(uintptr(timerBase + 0x28)))

func hardwareTicks() uint32 {
	return timerRawLow.Get()
}

// InitClock makes the microsecond timer the core tick source, so events
// recorded in interrupt context carry live timestamps
func InitClock() {
	core.SetTickSource(hardwareTicks)
}

// UpdateSystemTime publishes the hardware time to the scheduler
func UpdateSystemTime() {
	core.SetTime(hardwareTicks())
}
