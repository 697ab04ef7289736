package protocol

import (
	"softi2c/core"
)

// TraceEncoder frames payloads into an OutputBuffer. Each frame carries
// the next sequence number so the host can count lost frames.
type TraceEncoder struct {
	output OutputBuffer
	seq    uint8
}

// NewTraceEncoder creates an encoder writing to output
func NewTraceEncoder(output OutputBuffer) *TraceEncoder {
	return &TraceEncoder{output: output}
}

// EncodeFrame writes one frame whose payload is produced by frameData.
// frameData must keep the payload within FramePayloadMax.
func (e *TraceEncoder) EncodeFrame(frameData func(output OutputBuffer)) {
	cursor := e.output.CurPosition()

	// Length placeholder and sequence
	e.output.Output([]byte{0, FrameDest | e.seq})

	frameData(e.output)

	changed := len(e.output.DataSince(cursor))
	e.output.Update(cursor, uint8(changed+FrameTrailer))

	crc := CRC16(e.output.DataSince(cursor))
	e.output.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		FrameSync,
	})

	e.seq = (e.seq + 1) & SeqMask
}

// EncodeEvents packs events into as few frames as possible and returns
// the number of frames written.
func (e *TraceEncoder) EncodeEvents(events []core.BusEvent) int {
	frames := 0
	for len(events) > 0 {
		e.EncodeFrame(func(output OutputBuffer) {
			start := output.CurPosition()
			for len(events) > 0 && output.CurPosition()-start+MaxEventSize <= FramePayloadMax {
				EncodeEvent(output, events[0])
				events = events[1:]
			}
		})
		frames++
	}
	return frames
}

// Sequence returns the sequence number of the next frame
func (e *TraceEncoder) Sequence() uint8 {
	return e.seq
}

// Reset restarts the sequence at zero
func (e *TraceEncoder) Reset() {
	e.seq = 0
}
