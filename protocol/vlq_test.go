package protocol

import (
	"bytes"
	"testing"
)

func TestVLQRoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 95, 96, -32, -33,
		4095, 12287, 12288, -4096, -4097,
		1000000, -1000000,
		1<<31 - 1, -1 << 31,
	}

	for _, v := range values {
		output := NewScratchOutput()
		EncodeVLQInt(output, v)
		encoded := output.Result()

		data := encoded
		got, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Decode %d (%X): %v", v, encoded, err)
			continue
		}
		if got != v {
			t.Errorf("Expected %d, got %d (encoded as %X)", v, got, encoded)
		}
		if len(data) != 0 {
			t.Errorf("Expected all bytes consumed for %d, %d left", v, len(data))
		}
	}
}

func TestVLQUintClock(t *testing.T) {
	// Trace clocks use the full 32-bit range
	for _, v := range []uint32{0, 95, 96, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF} {
		output := NewScratchOutput()
		EncodeVLQUint(output, v)

		data := output.Result()
		got, err := DecodeVLQUint(&data)
		if err != nil || got != v {
			t.Errorf("Expected %d, got %d (%v)", v, got, err)
		}
	}
}

func TestVLQEncoding(t *testing.T) {
	testCases := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{-1, []byte{0x7F}},
		{-32, []byte{0x60}},
		{255, []byte{0x81, 0x7F}},
		{0x7FFFFFFF, []byte{0x87, 0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tc := range testCases {
		if got := EncodeVLQ(tc.value); !bytes.Equal(got, tc.expected) {
			t.Errorf("EncodeVLQ(%d): expected %X, got %X", tc.value, tc.expected, got)
		}
	}
}

func TestVLQDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrBufferTooSmall},
		{"truncated", []byte{0x81}, ErrBufferTooSmall},
		{"too long", []byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrInvalidVLQ},
	}

	for _, tc := range testCases {
		data := tc.data
		if _, err := DecodeVLQInt(&data); err != tc.err {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
		if len(data) != len(tc.data) {
			t.Errorf("%s: input advanced on error", tc.name)
		}
	}
}
