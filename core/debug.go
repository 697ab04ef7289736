package core

import "sync/atomic"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// EventKind classifies a bus event captured in interrupt context
type EventKind uint8

// Bus event kinds
const (
	EvtNone            EventKind = iota
	EvtStart                     // START on an idle bus
	EvtRepeatedStart             // START without an intervening STOP
	EvtStop                      // STOP closing a matched transaction
	EvtAddressMatch              // Value: address byte, Flags: read
	EvtAddressMismatch           // Value: address byte
	EvtByteReceived              // Value: byte, Flags: ACK sent
	EvtByteTransmitted           // Value: byte
	EvtMasterNack                // master NACKed the last transmitted byte
	EvtEnabled                   // capture interrupt enabled
	EvtDisabled                  // capture interrupt disabled
)

// Event flag bits
const (
	EvfRead = 1 << 0
	EvfAck  = 1 << 1
)

// BusEvent is one fixed-size trace record. Recording it never allocates.
type BusEvent struct {
	Kind  EventKind
	Flags uint8
	Value uint8
	Clock uint32 // System clock at event
}

const (
	EventRingSize = 64 // power of two
	eventRingMask = EventRingSize - 1
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether DebugPrintln produces output
	debugEnabled bool = false

	// Single-producer (interrupt) / single-consumer (task) event ring
	eventRing    [EventRingSize]BusEvent
	eventHead    uint32 // total events written
	eventTail    uint32 // total events consumed by DrainEvents
	eventLost    uint32 // events overwritten before they were drained
	eventEnabled uint32 = 1

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking).
// The message is dropped if the channel is full.
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// SetEventTrace turns bus event recording on or off
func SetEventTrace(enabled bool) {
	v := uint32(0)
	if enabled {
		v = 1
	}
	atomic.StoreUint32(&eventEnabled, v)
}

// RecordEvent stores a bus event in the ring. Safe from interrupt context;
// when the consumer falls behind the oldest entries are overwritten.
func RecordEvent(kind EventKind, value uint8, flags uint8) {
	if atomic.LoadUint32(&eventEnabled) == 0 {
		return
	}
	head := atomic.LoadUint32(&eventHead)
	eventRing[head&eventRingMask] = BusEvent{
		Kind:  kind,
		Flags: flags,
		Value: value,
		Clock: GetTime(),
	}
	atomic.StoreUint32(&eventHead, head+1)
}

// DrainEvents copies unread events into dst in arrival order and returns
// how many were copied.
func DrainEvents(dst []BusEvent) int {
	head := atomic.LoadUint32(&eventHead)
	tail := atomic.LoadUint32(&eventTail)
	if head-tail > EventRingSize {
		atomic.AddUint32(&eventLost, head-tail-EventRingSize)
		tail = head - EventRingSize
	}
	n := 0
	for tail != head && n < len(dst) {
		dst[n] = eventRing[tail&eventRingMask]
		tail++
		n++
	}
	atomic.StoreUint32(&eventTail, tail)
	return n
}

// LostEvents returns how many events were overwritten before being drained
func LostEvents() uint32 {
	return atomic.LoadUint32(&eventLost)
}

// ClearEventRing discards all recorded events
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = BusEvent{}
	}
	atomic.StoreUint32(&eventHead, 0)
	atomic.StoreUint32(&eventTail, 0)
	atomic.StoreUint32(&eventLost, 0)
}

// String returns the log name of an event kind
func (k EventKind) String() string {
	switch k {
	case EvtStart:
		return "START"
	case EvtRepeatedStart:
		return "RESTART"
	case EvtStop:
		return "STOP"
	case EvtAddressMatch:
		return "ADDR_MATCH"
	case EvtAddressMismatch:
		return "ADDR_MISS"
	case EvtByteReceived:
		return "RX"
	case EvtByteTransmitted:
		return "TX"
	case EvtMasterNack:
		return "MASTER_NACK"
	case EvtEnabled:
		return "ENABLED"
	case EvtDisabled:
		return "DISABLED"
	default:
		return "UNKNOWN"
	}
}

// FormatEvent renders an event as a single log line
func FormatEvent(evt BusEvent) string {
	line := "[I2CS] " + utoa(evt.Clock) + " " + evt.Kind.String()
	switch evt.Kind {
	case EvtAddressMatch:
		line += " addr=" + hexByte(evt.Value>>1)
		if evt.Flags&EvfRead != 0 {
			line += " read"
		} else {
			line += " write"
		}
	case EvtAddressMismatch:
		line += " addr=" + hexByte(evt.Value>>1)
	case EvtByteReceived:
		line += " " + hexByte(evt.Value)
		if evt.Flags&EvfAck != 0 {
			line += " ack"
		} else {
			line += " nack"
		}
	case EvtByteTransmitted:
		line += " " + hexByte(evt.Value)
	}
	return line
}

// DumpEventRing outputs the most recent events without consuming them.
// Call after stopping the bus or on error.
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[I2CS] === Event Ring Dump ===")
	head := atomic.LoadUint32(&eventHead)
	start := uint32(0)
	if head > EventRingSize {
		start = head - EventRingSize
	}
	for i := start; i != head; i++ {
		evt := eventRing[i&eventRingMask]
		if evt.Kind == EvtNone {
			continue
		}
		debugPrintln(FormatEvent(evt))
	}
	debugPrintln("[I2CS] lost=" + utoa(LostEvents()))
	debugPrintln("[I2CS] === End Dump ===")
}
