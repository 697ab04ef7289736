//go:build !tinygo

package core

// IRQState stands in for the saved interrupt mask on host builds
type IRQState uintptr

// Host builds have no interrupts: the simulated bus runs handlers
// synchronously on the caller's goroutine.
func disableInterrupts() IRQState {
	return 0
}

func restoreInterrupts(state IRQState) {}

// EnterCritical masks interrupts around a short read-modify-write shared
// with an interrupt handler
func EnterCritical() IRQState {
	return disableInterrupts()
}

// ExitCritical restores the mask saved by EnterCritical
func ExitCritical(state IRQState) {
	restoreInterrupts(state)
}
