package monitor

import (
	"io"
	"testing"
	"time"

	"softi2c/core"
	"softi2c/protocol"
)

func encode(events []core.BusEvent) []byte {
	out := protocol.NewScratchOutput()
	protocol.NewTraceEncoder(out).EncodeEvents(events)
	return append([]byte(nil), out.Result()...)
}

func TestMonitorDecodesStream(t *testing.T) {
	r, w := io.Pipe()
	m := New(r, 64)

	sent := []core.BusEvent{
		{Kind: core.EvtStart, Clock: 10},
		{Kind: core.EvtAddressMatch, Value: 0x6E, Clock: 20},
		{Kind: core.EvtByteReceived, Value: 0x01, Flags: core.EvfAck, Clock: 30},
		{Kind: core.EvtStop, Clock: 40},
	}
	data := encode(sent)

	go func() {
		// Split mid-frame to exercise reassembly
		w.Write(data[:3])
		w.Write(data[3:])
		w.Close()
	}()

	var got []core.BusEvent
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case evt, ok := <-m.Events():
			if !ok {
				done = true
				break
			}
			got = append(got, evt)
		case <-timeout:
			t.Fatalf("Timed out, got %d events", len(got))
		}
	}

	if len(got) != len(sent) {
		t.Fatalf("Expected %d events, got %d", len(sent), len(got))
	}
	for i := range sent {
		if got[i] != sent[i] {
			t.Errorf("Event %d: expected %+v, got %+v", i, sent[i], got[i])
		}
	}
	if st := m.Stats(); st.Frames != 1 || st.Resyncs != 0 {
		t.Errorf("Unexpected stats %+v", st)
	}
	m.Close()
}

func TestMonitorSkipsNoise(t *testing.T) {
	r, w := io.Pipe()
	m := New(r, 64)

	data := append([]byte{0xFF, 0x00, 0x13, protocol.FrameSync}, encode([]core.BusEvent{{Kind: core.EvtStop}})...)
	go func() {
		w.Write(data)
		w.Close()
	}()

	count := 0
	for range m.Events() {
		count++
	}
	if count != 1 {
		t.Errorf("Expected 1 event after noise, got %d", count)
	}
	if st := m.Stats(); st.Resyncs == 0 {
		t.Errorf("Expected a resync, got %+v", st)
	}
}

func TestMonitorClose(t *testing.T) {
	r, _ := io.Pipe()
	m := New(r, 1)

	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close did not return")
	}
	if _, ok := <-m.Events(); ok {
		t.Errorf("Expected events channel closed")
	}
	// Second close is harmless
	m.Close()
}
