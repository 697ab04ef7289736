package core

// IRQSource identifies an interrupt line that a target forwards to core.
type IRQSource uint8

// Interrupt sources a target may forward
const (
	IRQCapture0 IRQSource = iota // first edge-capture timer
	IRQCapture1                  // second edge-capture timer
	IRQCapture2
	IRQCapture3
	NumIRQSources
)

// IRQHandler runs to completion in interrupt context.
type IRQHandler func()

var irqTable [NumIRQSources]IRQHandler

// RegisterIRQ installs the handler for src, replacing any previous one.
func RegisterIRQ(src IRQSource, h IRQHandler) {
	if src >= NumIRQSources {
		panic("IRQ source out of range")
	}
	state := disableInterrupts()
	defer restoreInterrupts(state)

	irqTable[src] = h
}

// UnregisterIRQ removes the handler for src
func UnregisterIRQ(src IRQSource) {
	RegisterIRQ(src, nil)
}

// DispatchIRQ is called from the target's interrupt vector.
// It reports whether a handler was installed.
func DispatchIRQ(src IRQSource) bool {
	if src >= NumIRQSources {
		return false
	}
	h := irqTable[src]
	if h == nil {
		return false
	}
	h()
	return true
}
