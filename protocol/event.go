package protocol

import (
	"softi2c/core"
)

// MaxEventSize is the longest encoding of one event: kind, flags and
// value fit in two bytes each, the clock in five.
const MaxEventSize = 2 + 2 + maxVLQLen + 2

// EncodeEvent appends one event as VLQ(kind) VLQ(flags) VLQ(clock) VLQ(value)
func EncodeEvent(output OutputBuffer, evt core.BusEvent) {
	EncodeVLQUint(output, uint32(evt.Kind))
	EncodeVLQUint(output, uint32(evt.Flags))
	EncodeVLQUint(output, evt.Clock)
	EncodeVLQUint(output, uint32(evt.Value))
}

// DecodeEvent decodes one event and advances data past it
func DecodeEvent(data *[]byte) (core.BusEvent, error) {
	var fields [4]uint32
	for i := range fields {
		v, err := DecodeVLQUint(data)
		if err != nil {
			return core.BusEvent{}, err
		}
		fields[i] = v
	}
	if fields[0] > 0xFF || fields[1] > 0xFF || fields[3] > 0xFF {
		return core.BusEvent{}, ErrBadFrame
	}
	return core.BusEvent{
		Kind:  core.EventKind(fields[0]),
		Flags: uint8(fields[1]),
		Clock: fields[2],
		Value: uint8(fields[3]),
	}, nil
}

// DecodeEvents decodes a whole frame payload
func DecodeEvents(payload []byte) ([]core.BusEvent, error) {
	var events []core.BusEvent
	for len(payload) > 0 {
		evt, err := DecodeEvent(&payload)
		if err != nil {
			return events, err
		}
		events = append(events, evt)
	}
	return events, nil
}
