package core

import "testing"

func TestDispatchIRQ(t *testing.T) {
	defer UnregisterIRQ(IRQCapture1)

	if DispatchIRQ(IRQCapture1) {
		t.Error("Expected no handler before registration")
	}

	calls := 0
	RegisterIRQ(IRQCapture1, func() { calls++ })
	if !DispatchIRQ(IRQCapture1) {
		t.Error("Expected handler to run")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}

	// Replacing the handler drops the old one
	RegisterIRQ(IRQCapture1, func() { calls += 10 })
	DispatchIRQ(IRQCapture1)
	if calls != 11 {
		t.Errorf("Expected 11, got %d", calls)
	}

	UnregisterIRQ(IRQCapture1)
	if DispatchIRQ(IRQCapture1) {
		t.Error("Expected no handler after unregister")
	}
}

func TestDispatchIRQOutOfRange(t *testing.T) {
	if DispatchIRQ(NumIRQSources) {
		t.Error("Expected out of range source to be ignored")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected RegisterIRQ to panic")
		}
	}()
	RegisterIRQ(NumIRQSources, func() {})
}
