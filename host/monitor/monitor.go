// Package monitor decodes the firmware's bus trace from a serial stream.
package monitor

import (
	"errors"
	"io"
	"sync"
	"time"

	"softi2c/core"
	"softi2c/protocol"
)

// Stats combines frame-level and event-level counters
type Stats struct {
	protocol.DecoderStats
	BadPayloads uint32 // frames whose payload did not decode
	Dropped     uint32 // events discarded because the reader fell behind
}

// Monitor reads frames from a port in a background goroutine and
// delivers the decoded events on a channel.
type Monitor struct {
	port io.ReadCloser

	input   *protocol.RxQueue
	decoder *protocol.FrameDecoder
	events  chan core.BusEvent

	mu          sync.Mutex
	badPayloads uint32
	dropped     uint32

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// New starts monitoring port. queue is the event channel capacity.
func New(port io.ReadCloser, queue int) *Monitor {
	m := &Monitor{
		port:     port,
		input:    protocol.NewRxQueue(1024),
		decoder:  protocol.NewFrameDecoder(),
		events:   make(chan core.BusEvent, queue),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	go m.readLoop()
	return m
}

// Events is closed when the port reaches EOF or the monitor is closed
func (m *Monitor) Events() <-chan core.BusEvent {
	return m.events
}

func (m *Monitor) readLoop() {
	defer close(m.doneChan)
	defer close(m.events)

	buffer := make([]byte, 256)
	for {
		select {
		case <-m.stopChan:
			return
		default:
		}

		n, err := m.port.Read(buffer)
		if n > 0 {
			m.feed(buffer[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			select {
			case <-m.stopChan:
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	}
}

// feed queues data and decodes whatever frames are complete
func (m *Monitor) feed(data []byte) {
	for len(data) > 0 {
		n := m.input.Append(data)
		data = data[n:]
		m.process()
		if n == 0 && len(data) > 0 {
			// The queue holds only a partial frame longer than the
			// queue itself; drop it
			m.input.Reset()
		}
	}
}

func (m *Monitor) process() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.decoder.Receive(m.input, func(f protocol.Frame) {
		events, err := protocol.DecodeEvents(f.Payload)
		if err != nil {
			m.badPayloads++
		}
		for _, evt := range events {
			select {
			case m.events <- evt:
			default:
				m.dropped++
			}
		}
	})
}

// Stats returns a snapshot of the counters
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		DecoderStats: m.decoder.Stats(),
		BadPayloads:  m.badPayloads,
		Dropped:      m.dropped,
	}
}

// Close stops the read loop and closes the port
func (m *Monitor) Close() error {
	var err error
	m.stopOnce.Do(func() {
		close(m.stopChan)
		err = m.port.Close()
		<-m.doneChan
	})
	return err
}
