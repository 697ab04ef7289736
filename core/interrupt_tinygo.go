//go:build tinygo

package core

import "runtime/interrupt"

// IRQState is the interrupt mask saved by EnterCritical
type IRQState = interrupt.State

func disableInterrupts() IRQState {
	return interrupt.Disable()
}

func restoreInterrupts(state IRQState) {
	interrupt.Restore(state)
}

// EnterCritical masks interrupts around a short read-modify-write shared
// with an interrupt handler
func EnterCritical() IRQState {
	return disableInterrupts()
}

// ExitCritical restores the mask saved by EnterCritical
func ExitCritical(state IRQState) {
	restoreInterrupts(state)
}
