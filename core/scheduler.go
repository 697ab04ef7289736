package core

// Timer is a callback run from the main loop once GetTime passes
// WakeTime. Returning SF_RESCHEDULE re-arms it at the updated WakeTime.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerList   *Timer
	currentTime uint32
)

// timerBefore compares tick values across counter wraparound
func timerBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ScheduleTimer arms t. It must not already be armed.
func ScheduleTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	insertTimer(t)
}

// CancelTimer removes t from the schedule if present
func CancelTimer(t *Timer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	pos := &timerList
	for *pos != nil {
		if *pos == t {
			*pos = t.Next
			t.Next = nil
			return
		}
		pos = &(*pos).Next
	}
}

// insertTimer links t in WakeTime order, after any timers due at the
// same tick
func insertTimer(t *Timer) {
	pos := &timerList
	for *pos != nil && !timerBefore(t.WakeTime, (*pos).WakeTime) {
		pos = &(*pos).Next
	}
	t.Next = *pos
	*pos = t
}

// TimerDispatch runs every timer whose WakeTime has passed.
// Handlers run with interrupts enabled so the bus interrupt keeps its
// latency while a handler writes trace output.
func TimerDispatch() {
	for {
		timer := popDueTimer()
		if timer == nil {
			return
		}
		if timer.Handler(timer) == SF_RESCHEDULE {
			ScheduleTimer(timer)
		}
	}
}

func popDueTimer() *Timer {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	timer := timerList
	if timer == nil || timerBefore(currentTime, timer.WakeTime) {
		return nil
	}
	timerList = timer.Next
	timer.Next = nil
	return timer
}
