// Command i2cs-monitor prints the bus trace streamed by the firmware
// when trace framing is enabled.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"softi2c/core"
	"softi2c/host/monitor"
	"softi2c/host/serial"
)

func main() {
	device := flag.String("device", "/dev/ttyACM0", "serial device")
	baud := flag.Int("baud", serial.DefaultBaud, "baud rate (UART trace ports only)")
	timeout := flag.Duration("timeout", 0, "exit after this long (0 = run until interrupted)")
	queue := flag.Int("queue", 256, "event queue length")
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}
	fmt.Printf("Monitoring %s at %d baud\n", port.Device(), cfg.Baud)

	mon := monitor.New(port, *queue)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var deadline <-chan time.Time
	if *timeout > 0 {
		deadline = time.After(*timeout)
	}

loop:
	for {
		select {
		case evt, ok := <-mon.Events():
			if !ok {
				break loop
			}
			fmt.Println(core.FormatEvent(evt))
		case <-sigChan:
			break loop
		case <-deadline:
			break loop
		}
	}

	mon.Close()
	st := mon.Stats()
	fmt.Printf("frames=%d resyncs=%d discarded=%d seq_gaps=%d bad_payloads=%d dropped=%d\n",
		st.Frames, st.Resyncs, st.Discarded, st.SeqGaps, st.BadPayloads, st.Dropped)
}
