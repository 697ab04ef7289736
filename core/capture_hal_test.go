package core

import "testing"

func TestBindCaptureChannels(t *testing.T) {
	flags := BindCaptureChannels(1, 2)

	if flags.SDARise != 1<<5 {
		t.Errorf("Expected SDARise 0x20, got 0x%X", uint32(flags.SDARise))
	}
	if flags.SDAFall != 1<<13 {
		t.Errorf("Expected SDAFall 0x2000, got 0x%X", uint32(flags.SDAFall))
	}
	if flags.SCLRise != 1<<6 {
		t.Errorf("Expected SCLRise 0x40, got 0x%X", uint32(flags.SCLRise))
	}
	if flags.SCLFall != 1<<14 {
		t.Errorf("Expected SCLFall 0x4000, got 0x%X", uint32(flags.SCLFall))
	}
	if flags.All() != 0x6060 {
		t.Errorf("Expected mask 0x6060, got 0x%X", uint32(flags.All()))
	}
}

func TestBindCaptureChannelsHigh(t *testing.T) {
	flags := BindCaptureChannels(4, 3)

	if flags.SDARise != 1<<8 || flags.SDAFall != 1<<16 {
		t.Errorf("Unexpected SDA bits 0x%X/0x%X", uint32(flags.SDARise), uint32(flags.SDAFall))
	}
	if flags.SCLRise != 1<<7 || flags.SCLFall != 1<<15 {
		t.Errorf("Unexpected SCL bits 0x%X/0x%X", uint32(flags.SCLRise), uint32(flags.SCLFall))
	}
}

func TestBindCaptureChannelsPanics(t *testing.T) {
	cases := []struct {
		name     string
		sda, scl CaptureChannel
	}{
		{"same channel", 2, 2},
		{"channel zero", 0, 1},
		{"channel five", 1, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for sda=%d scl=%d", tc.sda, tc.scl)
				}
			}()
			BindCaptureChannels(tc.sda, tc.scl)
		})
	}
}
