package protocol

import "errors"

var (
	ErrInvalidVLQ     = errors.New("invalid VLQ encoding")
	ErrBufferTooSmall = errors.New("buffer too small for VLQ")
)

// maxVLQLen is the longest encoding of a 32-bit value
const maxVLQLen = 5

// putVLQ writes v into buf most significant group first, 7 bits per byte,
// and returns the length. A group is emitted only when the value does not
// fit in the groups after it; values in [-32, 96) take one byte.
func putVLQ(buf *[maxVLQLen]byte, v int32) int {
	n := 0
	for shift := uint(28); shift >= 7; shift -= 7 {
		lim := int32(1) << (shift - 2)
		if v < -lim || v >= 3*lim {
			buf[n] = byte(v>>shift)&0x7F | 0x80
			n++
		}
	}
	buf[n] = byte(v) & 0x7F
	return n + 1
}

// EncodeVLQInt appends the encoding of v to output
func EncodeVLQInt(output OutputBuffer, v int32) {
	var buf [maxVLQLen]byte
	n := putVLQ(&buf, v)
	output.Output(buf[:n])
}

// EncodeVLQUint encodes an unsigned value with the signed encoding;
// the decoder restores it with a plain conversion.
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// EncodeVLQ returns the encoding of v as a new slice
func EncodeVLQ(v int32) []byte {
	var buf [maxVLQLen]byte
	n := putVLQ(&buf, v)
	return append([]byte(nil), buf[:n]...)
}

// DecodeVLQInt decodes one value and advances data past it. On error
// data is left unchanged.
func DecodeVLQInt(data *[]byte) (int32, error) {
	in := *data
	if len(in) == 0 {
		return 0, ErrBufferTooSmall
	}

	v := uint32(in[0] & 0x7F)
	if in[0]&0x60 == 0x60 {
		// Leading group carries the sign
		v |= ^uint32(0x1F)
	}

	i := 0
	for in[i]&0x80 != 0 {
		i++
		if i == maxVLQLen {
			return 0, ErrInvalidVLQ
		}
		if i == len(in) {
			return 0, ErrBufferTooSmall
		}
		v = v<<7 | uint32(in[i]&0x7F)
	}

	*data = in[i+1:]
	return int32(v), nil
}

// DecodeVLQUint decodes a value written by EncodeVLQUint
func DecodeVLQUint(data *[]byte) (uint32, error) {
	val, err := DecodeVLQInt(data)
	return uint32(val), err
}
