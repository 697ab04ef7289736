package protocol

// InputBuffer is a queue of received trace bytes the decoder reads from
type InputBuffer interface {
	Data() []byte
	Available() int
	Pop(n int)
}

// OutputBuffer is where frames are assembled. Update and DataSince let
// the encoder patch the length byte and checksum a frame in place.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	Update(pos int, val byte)
	DataSince(pos int) []byte
}

// SliceInput reads frames out of a complete capture held in memory
type SliceInput []byte

func (s *SliceInput) Data() []byte   { return *s }
func (s *SliceInput) Available() int { return len(*s) }

func (s *SliceInput) Pop(n int) {
	if n > len(*s) {
		n = len(*s)
	}
	*s = (*s)[n:]
}

// ScratchOutput builds frames on a fixed array, so the firmware can encode
// from a timer callback without allocating. Output beyond OutputMax is
// dropped.
type ScratchOutput struct {
	buf [OutputMax]byte
	pos int
}

func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < s.pos {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// RxQueue holds bytes read from a serial port until the decoder has
// consumed them. Unread bytes are kept contiguous: Append slides them to
// the front of the buffer when it runs out of tail room.
type RxQueue struct {
	buf   []byte
	start int
	end   int
}

// NewRxQueue returns a queue holding at most size unread bytes
func NewRxQueue(size int) *RxQueue {
	return &RxQueue{buf: make([]byte, size)}
}

// Append copies as much of data as fits and returns how many bytes were
// taken
func (q *RxQueue) Append(data []byte) int {
	if len(q.buf)-q.end < len(data) && q.start > 0 {
		q.end = copy(q.buf, q.buf[q.start:q.end])
		q.start = 0
	}
	n := copy(q.buf[q.end:], data)
	q.end += n
	return n
}

func (q *RxQueue) Data() []byte {
	return q.buf[q.start:q.end]
}

func (q *RxQueue) Available() int {
	return q.end - q.start
}

// Free is the number of bytes Append can still take
func (q *RxQueue) Free() int {
	return len(q.buf) - q.Available()
}

func (q *RxQueue) Pop(n int) {
	if n > q.Available() {
		n = q.Available()
	}
	q.start += n
	if q.start == q.end {
		q.start, q.end = 0, 0
	}
}

// Reset discards every unread byte
func (q *RxQueue) Reset() {
	q.start, q.end = 0, 0
}
