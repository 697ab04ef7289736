//go:build rp2040 || rp2350

package main

import (
	"io"
	"machine"

	"softi2c/config"
	"softi2c/core"
	"softi2c/protocol"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// traceBatch bounds one encoder pass so a batch always fits the scratch
// output
const traceBatch = 16

var (
	traceOut      io.Writer
	traceFramed   bool
	traceInterval uint32
	traceTimer    core.Timer
	traceScratch  = protocol.NewScratchOutput()
	traceEncoder  = protocol.NewTraceEncoder(traceScratch)
	traceEvents   [traceBatch]core.BusEvent

	// Write failures since the last successful write
	traceWriteFailures uint32
)

// openTracePort configures the port named in cfg and returns it
func openTracePort(cfg config.TraceConfig) io.Writer {
	switch cfg.Port {
	case config.PortUART0:
		uartx.UART0.Configure(uartx.UARTConfig{
			BaudRate: cfg.Baud,
			TX:       machine.UART0_TX_PIN,
			RX:       machine.UART0_RX_PIN,
		})
		return uartx.UART0
	case config.PortUART1:
		uartx.UART1.Configure(uartx.UARTConfig{
			BaudRate: cfg.Baud,
			TX:       machine.UART1_TX_PIN,
			RX:       machine.UART1_RX_PIN,
		})
		return uartx.UART1
	default:
		return openUSB()
	}
}

// InitTrace routes bus events to the trace port. With framing enabled
// the port carries protocol frames for the host monitor; otherwise it
// carries plain text lines and debug output.
func InitTrace(cfg config.TraceConfig) {
	traceOut = openTracePort(cfg)
	traceFramed = cfg.Enabled
	traceInterval = core.TimerFromMS(cfg.FlushMS)

	if !traceFramed {
		core.SetDebugWriter(func(s string) {
			traceWrite([]byte(s))
			traceWrite([]byte("\r\n"))
		})
		core.SetDebugEnabled(true)
	}

	core.SetEventTrace(true)
	traceTimer.Handler = traceFlush
	traceTimer.WakeTime = core.GetTime() + traceInterval
	core.ScheduleTimer(&traceTimer)
}

// traceFlush drains the event ring in task context
func traceFlush(t *core.Timer) uint8 {
	for {
		n := core.DrainEvents(traceEvents[:])
		if n == 0 {
			break
		}
		if traceFramed {
			traceEncoder.EncodeEvents(traceEvents[:n])
			traceWrite(traceScratch.Result())
			traceScratch.Reset()
		} else {
			for _, evt := range traceEvents[:n] {
				core.DebugPrintln(core.FormatEvent(evt))
			}
		}
	}

	t.WakeTime += traceInterval
	return core.SF_RESCHEDULE
}

func traceWrite(data []byte) {
	written := 0
	for written < len(data) {
		n, err := traceOut.Write(data[written:])
		if err != nil || n == 0 {
			// Host not listening; drop the rest rather than stall the loop
			traceWriteFailures++
			return
		}
		written += n
	}
	traceWriteFailures = 0
}
