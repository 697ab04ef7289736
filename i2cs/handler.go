package i2cs

// Handler receives the engine's protocol callbacks. Every method runs
// synchronously in interrupt context: keep it short, never block, and
// never enable or disable the bus interrupt from inside it.
type Handler interface {
	// AddressMatch is called once per START whose address byte matched.
	// read is the R/W bit; restart is true when the START followed another
	// START without an intervening STOP.
	AddressMatch(read, restart bool)

	// DataReceived is called once per byte written by the master.
	// Returning true ACKs the byte, false NACKs it.
	DataReceived(b byte) (ack bool)

	// TransmitByte supplies the next byte for the master to read. It is
	// called before the first bit of the byte is shifted out.
	TransmitByte() byte

	// Stop is called once per completed transaction that matched the address
	Stop()
}

// HandlerFuncs adapts independent functions to Handler.
// A nil DataReceived ACKs everything; a nil TransmitByte sends 0xFF.
type HandlerFuncs struct {
	OnAddressMatch func(read, restart bool)
	OnDataReceived func(b byte) bool
	OnTransmitByte func() byte
	OnStop         func()
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) AddressMatch(read, restart bool) {
	if h.OnAddressMatch != nil {
		h.OnAddressMatch(read, restart)
	}
}

func (h HandlerFuncs) DataReceived(b byte) bool {
	if h.OnDataReceived == nil {
		return true
	}
	return h.OnDataReceived(b)
}

func (h HandlerFuncs) TransmitByte() byte {
	if h.OnTransmitByte == nil {
		return 0xFF
	}
	return h.OnTransmitByte()
}

func (h HandlerFuncs) Stop() {
	if h.OnStop != nil {
		h.OnStop()
	}
}
