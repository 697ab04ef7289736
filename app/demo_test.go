package app

import (
	"bytes"
	"reflect"
	"testing"

	"softi2c/core"
	"softi2c/i2cs"
	"softi2c/sim"
)

func newDemoBus(t *testing.T) (*Demo, *sim.Master) {
	t.Helper()
	bus := sim.NewBus(core.IRQCapture0, 1, 2)
	sda, scl := bus.SlavePins()
	demo := NewDemo()
	s := i2cs.New(i2cs.Config{
		Address:    0x37,
		SDA:        sda,
		SCL:        scl,
		Capture:    bus.Capture,
		SDAChannel: bus.SDAChannel,
		SCLChannel: bus.SCLChannel,
	}, demo)
	core.RegisterIRQ(core.IRQCapture0, s.HandleInterrupt)
	t.Cleanup(func() { core.UnregisterIRQ(core.IRQCapture0) })
	s.Start()
	return demo, bus.NewMaster()
}

func TestDemoRegisterRead(t *testing.T) {
	testCases := []struct {
		register byte
		n        int
		expected []byte
	}{
		{0, 2, []byte{0xA0, 0xA1}},
		{3, 3, []byte{0xCC, 0xDE, 0x12}},
		{6, 4, []byte{0x68, 0x57, 0xA0, 0xA1}},
		{9, 1, []byte{0xA1}},
	}

	for _, tc := range testCases {
		demo, m := newDemoBus(t)
		r := make([]byte, tc.n)
		if err := m.Tx(0x37, []byte{tc.register}, r); err != nil {
			t.Fatalf("Tx failed: %v", err)
		}
		if !bytes.Equal(r, tc.expected) {
			t.Errorf("Register %d: expected %X, got %X", tc.register, tc.expected, r)
		}
		if demo.Register() != tc.register {
			t.Errorf("Expected register %d selected, got %d", tc.register, demo.Register())
		}
	}
}

func TestDemoReadKeepsRegister(t *testing.T) {
	_, m := newDemoBus(t)
	if err := m.Tx(0x37, []byte{0x04}, nil); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}
	r := make([]byte, 2)
	if err := m.Tx(0x37, nil, r); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}
	if !bytes.Equal(r, []byte{0xDE, 0x12}) {
		t.Errorf("Expected DE 12, got %X", r)
	}
}

func TestDemoRxBufferFull(t *testing.T) {
	demo, m := newDemoBus(t)

	w := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for _, b := range append([]byte{0x6E}, w...) {
		m.WriteByte(b)
	}
	m.Stop()

	if m.Acks[len(m.Acks)-1] {
		t.Errorf("Expected ninth data byte NACKed")
	}
	tr, ok := demo.Take()
	if !ok {
		t.Fatalf("Expected a completed transaction")
	}
	if tr.Register != 1 || !bytes.Equal(tr.Data, w[:RxBufferSize]) {
		t.Errorf("Unexpected transaction %+v", tr)
	}
}

func TestDemoFlush(t *testing.T) {
	var lines []string
	core.SetDebugWriter(func(s string) { lines = append(lines, s) })
	core.SetDebugEnabled(true)
	defer core.SetDebugEnabled(false)

	demo, m := newDemoBus(t)
	if demo.Flush() {
		t.Errorf("Expected nothing to flush before a transaction")
	}
	if err := m.Tx(0x37, []byte{0x02, 0xAB, 0xCD}, nil); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}
	if !demo.Flush() {
		t.Fatalf("Expected a flushed transaction")
	}

	expected := []string{
		"[DEMO] STOP register: 2",
		"[DEMO] 000: 02 AB CD",
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("Expected %q, got %q", expected, lines)
	}
}

func TestDemoDropsWhenNotTaken(t *testing.T) {
	demo, m := newDemoBus(t)
	for i := 0; i < 3; i++ {
		if err := m.Tx(0x37, []byte{byte(i)}, nil); err != nil {
			t.Fatalf("Tx failed: %v", err)
		}
	}
	if demo.Dropped() != 2 {
		t.Errorf("Expected 2 dropped, got %d", demo.Dropped())
	}
	tr, _ := demo.Take()
	if tr.Register != 0 {
		t.Errorf("Expected first transaction kept, got register %d", tr.Register)
	}
}

func TestDemoRepeatedStartWrite(t *testing.T) {
	demo, m := newDemoBus(t)

	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for _, b := range []byte{0x6E, 0x02, 0xAA} {
		if err := m.WriteByte(b); err != nil {
			t.Fatalf("WriteByte %02X failed: %v", b, err)
		}
	}
	// Repeated START without STOP
	if err := m.Start(); err != nil {
		t.Fatalf("Repeated start failed: %v", err)
	}
	for _, b := range []byte{0x6E, 0x05, 0xBB} {
		if err := m.WriteByte(b); err != nil {
			t.Fatalf("WriteByte %02X failed: %v", b, err)
		}
	}
	m.Stop()

	tr, ok := demo.Take()
	if !ok {
		t.Fatalf("Expected a completed transaction")
	}
	if tr.Register != 5 {
		t.Errorf("Expected register 5, got %d", tr.Register)
	}
	if !bytes.Equal(tr.Data, []byte{0x05, 0xBB}) {
		t.Errorf("Expected data 05 BB, got %X", tr.Data)
	}
}
