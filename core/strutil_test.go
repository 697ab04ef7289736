package core

import "testing"

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", 1234: "1234", -42: "-42"}
	for in, want := range cases {
		if got := Itoa(in); got != want {
			t.Errorf("Itoa(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestHexByte(t *testing.T) {
	if got := HexByte(0x0A); got != "0x0A" {
		t.Errorf("Expected 0x0A, got %s", got)
	}
	if got := HexByte(0xFF); got != "0xFF" {
		t.Errorf("Expected 0xFF, got %s", got)
	}
}

func TestHexDump(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = byte(i)
	}
	lines := HexDump(data)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	want := "000: 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F"
	if lines[0] != want {
		t.Errorf("Expected %q, got %q", want, lines[0])
	}
	if lines[1] != "010: 10 11" {
		t.Errorf("Expected %q, got %q", "010: 10 11", lines[1])
	}
	if HexDump(nil) != nil {
		t.Error("Expected no lines for empty data")
	}
}
