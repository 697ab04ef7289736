package protocol

// Frame is one validated trace frame
type Frame struct {
	Sequence uint8 // low four bits of the sequence byte
	Payload  []byte
	CRC      uint16
}

// DecoderStats counts what the decoder saw on the wire
type DecoderStats struct {
	Frames    uint32
	Resyncs   uint32 // times synchronization was lost
	Discarded uint32 // bytes skipped while searching for a sync byte
	SeqGaps   uint32 // frames whose sequence did not follow the previous one
}

// FrameDecoder extracts frames from a byte stream. A bad length,
// sequence byte, trailing sync or CRC drops it out of sync; it then
// skips to the byte after the next FrameSync and tries again.
type FrameDecoder struct {
	synchronized bool
	haveSeq      bool
	nextSeq      uint8
	stats        DecoderStats
}

// NewFrameDecoder returns a decoder that assumes it starts in sync
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{synchronized: true}
}

// Receive consumes every complete frame in input, calling fn for each.
// A trailing partial frame is left in input for the next call. The
// payload passed to fn is only valid during the call.
func (d *FrameDecoder) Receive(input InputBuffer, fn func(Frame)) {
	data := input.Data()

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == FrameSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				d.stats.Discarded += uint32(len(data))
				data = nil
				break
			}
			d.stats.Discarded += uint32(syncPos)
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		if data[0] == FrameSync {
			data = data[1:]
			continue
		}

		if len(data) < FrameMin {
			break
		}

		frameLen := int(data[FramePositionLen])
		if frameLen < FrameMin || frameLen > FrameMax {
			d.desync()
			continue
		}

		seq := data[FramePositionSeq]
		if seq&^SeqMask != FrameDest {
			d.desync()
			continue
		}

		if len(data) < frameLen {
			break
		}

		if data[frameLen-FrameTrailerSync] != FrameSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[frameLen-FrameTrailerCRC])<<8 |
			uint16(data[frameLen-FrameTrailerCRC+1])
		if frameCRC != CRC16(data[:frameLen-FrameTrailer]) {
			d.desync()
			continue
		}

		seq &= SeqMask
		if d.haveSeq && seq != d.nextSeq {
			d.stats.SeqGaps++
		}
		d.haveSeq = true
		d.nextSeq = (seq + 1) & SeqMask
		d.stats.Frames++

		frame := Frame{
			Sequence: seq,
			Payload:  data[FrameHeader : frameLen-FrameTrailer],
			CRC:      frameCRC,
		}
		data = data[frameLen:]
		if fn != nil {
			fn(frame)
		}
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

func (d *FrameDecoder) desync() {
	d.synchronized = false
	d.stats.Resyncs++
}

// Synchronized reports whether the decoder is aligned on frame boundaries
func (d *FrameDecoder) Synchronized() bool {
	return d.synchronized
}

// Stats returns the decoder counters
func (d *FrameDecoder) Stats() DecoderStats {
	return d.stats
}

// Reset forgets the sequence history and assumes sync
func (d *FrameDecoder) Reset() {
	d.synchronized = true
	d.haveSeq = false
	d.nextSeq = 0
}
