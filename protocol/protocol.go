// Package protocol implements the bus trace wire format: VLQ-encoded
// events in small framed blocks with a sequence number and CRC, so a
// host can resynchronize on a lossy serial stream.
package protocol

import "errors"

// Version is the trace format version reported by the monitor
const Version = "0.1.0"

// Frame layout: len, seq|FrameDest, payload..., crc_hi, crc_lo, FrameSync
const (
	FrameHeader     = 2
	FrameTrailer    = 3
	FrameMin        = FrameHeader + FrameTrailer
	FrameMax        = 64
	FramePayloadMax = FrameMax - FrameMin

	FramePositionLen = 0
	FramePositionSeq = 1
	FrameTrailerCRC  = 3
	FrameTrailerSync = 1

	FrameSync = 0x7E
	FrameDest = 0x10
	SeqMask   = 0x0F

	// OutputMax is the scratch space for one batch of frames
	OutputMax = 512
)

// ErrBadFrame is returned when a frame payload does not decode
var ErrBadFrame = errors.New("malformed trace frame")
