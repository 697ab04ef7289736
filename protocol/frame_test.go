package protocol

import (
	"bytes"
	"reflect"
	"testing"

	"softi2c/core"
)

func TestEncodeFrame(t *testing.T) {
	output := NewScratchOutput()
	enc := NewTraceEncoder(output)

	enc.EncodeEvents([]core.BusEvent{{Kind: core.EvtStart}})

	expected := []byte{9, FrameDest, 1, 0, 0, 0, 0x85, 0xF8, FrameSync}
	if !bytes.Equal(output.Result(), expected) {
		t.Errorf("Expected frame %X, got %X", expected, output.Result())
	}
	if enc.Sequence() != 1 {
		t.Errorf("Expected next sequence 1, got %d", enc.Sequence())
	}
}

func TestSequenceWraps(t *testing.T) {
	output := NewScratchOutput()
	enc := NewTraceEncoder(output)

	for i := 0; i < 17; i++ {
		output.Reset()
		enc.EncodeFrame(func(OutputBuffer) {})
		if got := output.Result()[FramePositionSeq]; got != FrameDest|uint8(i&SeqMask) {
			t.Errorf("Frame %d: expected sequence byte %#x, got %#x", i, FrameDest|uint8(i&SeqMask), got)
		}
	}
}

func testEvents(n int) []core.BusEvent {
	events := make([]core.BusEvent, n)
	for i := range events {
		events[i] = core.BusEvent{
			Kind:  core.EventKind(1 + i%10),
			Flags: uint8(i % 4),
			Value: uint8(i * 37),
			Clock: uint32(i) * 123457,
		}
	}
	return events
}

func TestEventsRoundTrip(t *testing.T) {
	events := testEvents(40)
	output := NewScratchOutput()
	frames := NewTraceEncoder(output).EncodeEvents(events)
	if frames < 2 {
		t.Errorf("Expected events split over several frames, got %d", frames)
	}

	var decoded []core.BusEvent
	dec := NewFrameDecoder()
	in := SliceInput(output.Result())
	dec.Receive(&in, func(f Frame) {
		if len(f.Payload) > FramePayloadMax {
			t.Errorf("Payload too large")
		}
		evts, err := DecodeEvents(f.Payload)
		if err != nil {
			t.Fatalf("DecodeEvents failed: %v", err)
		}
		decoded = append(decoded, evts...)
	})

	if !reflect.DeepEqual(decoded, events) {
		t.Errorf("Round trip mismatch:\nexpected %+v\ngot      %+v", events, decoded)
	}
	if st := dec.Stats(); st.Frames != uint32(frames) || st.SeqGaps != 0 || st.Resyncs != 0 {
		t.Errorf("Unexpected decoder stats %+v", st)
	}
}

func TestFrameSizeLimit(t *testing.T) {
	events := make([]core.BusEvent, 30)
	for i := range events {
		events[i] = core.BusEvent{Kind: core.EvtByteReceived, Flags: 0xFF, Value: 0xFF, Clock: 0x7FFFFFFF}
	}
	output := NewScratchOutput()
	NewTraceEncoder(output).EncodeEvents(events)

	data := output.Result()
	for len(data) > 0 {
		n := int(data[FramePositionLen])
		if n > FrameMax {
			t.Fatalf("Frame of %d bytes exceeds %d", n, FrameMax)
		}
		data = data[n:]
	}
}

func TestDecoderResync(t *testing.T) {
	output := NewScratchOutput()
	enc := NewTraceEncoder(output)
	enc.EncodeEvents(testEvents(1))
	good := append([]byte(nil), output.Result()...)

	output.Reset()
	enc.EncodeEvents(testEvents(2))
	corrupt := append([]byte(nil), output.Result()...)
	corrupt[3] ^= 0x55

	output.Reset()
	enc.EncodeEvents(testEvents(3))
	last := append([]byte(nil), output.Result()...)

	var stream []byte
	stream = append(stream, 0x00, 0x42) // line noise
	stream = append(stream, FrameSync)
	stream = append(stream, good...)
	stream = append(stream, corrupt...)
	stream = append(stream, last...)

	var counts []int
	dec := NewFrameDecoder()
	in := SliceInput(stream)
	dec.Receive(&in, func(f Frame) {
		evts, err := DecodeEvents(f.Payload)
		if err != nil {
			t.Fatalf("DecodeEvents failed: %v", err)
		}
		counts = append(counts, len(evts))
	})

	if !reflect.DeepEqual(counts, []int{1, 3}) {
		t.Errorf("Expected frames with 1 and 3 events, got %v", counts)
	}
	st := dec.Stats()
	if st.Resyncs != 2 {
		t.Errorf("Expected 2 resyncs, got %d", st.Resyncs)
	}
	if st.SeqGaps != 1 {
		t.Errorf("Expected 1 sequence gap, got %d", st.SeqGaps)
	}
	if !dec.Synchronized() {
		t.Errorf("Expected decoder back in sync")
	}
}

func TestDecoderPartialFrame(t *testing.T) {
	output := NewScratchOutput()
	NewTraceEncoder(output).EncodeEvents(testEvents(3))
	data := output.Result()

	rx := NewRxQueue(128)
	dec := NewFrameDecoder()
	frames := 0
	fn := func(Frame) { frames++ }

	rx.Append(data[:len(data)-2])
	dec.Receive(rx, fn)
	if frames != 0 {
		t.Errorf("Expected no frame from a partial write, got %d", frames)
	}
	if rx.Available() != len(data)-2 {
		t.Errorf("Expected partial frame kept, %d bytes left", rx.Available())
	}

	rx.Append(data[len(data)-2:])
	dec.Receive(rx, fn)
	if frames != 1 {
		t.Errorf("Expected 1 frame, got %d", frames)
	}
	if rx.Available() != 0 {
		t.Errorf("Expected input consumed, %d bytes left", rx.Available())
	}
}

func TestDecodeEventErrors(t *testing.T) {
	if _, err := DecodeEvents([]byte{0x01, 0x00}); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}
	// kind 0x100 does not fit a byte
	if _, err := DecodeEvents([]byte{0x82, 0x00, 0x00, 0x00, 0x00}); err != ErrBadFrame {
		t.Errorf("Expected ErrBadFrame, got %v", err)
	}
}
