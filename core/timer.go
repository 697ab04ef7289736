package core

// TimerFreq is the tick rate of GetTime: one tick per microsecond, so
// trace clocks read directly as microseconds
const TimerFreq = 1000000

var systemTicks uint32

// GetTime returns the current tick count. It wraps every ~71 minutes;
// compare ticks with timerBefore, never with <.
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime publishes a new tick count (hardware clock or tests)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerFromMS converts milliseconds to ticks
func TimerFromMS(ms uint32) uint32 {
	return TimerFromUS(ms * 1000)
}

// TimerToUS converts ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// ProcessTimers latches the current time and runs every due timer.
// Call it from the main loop.
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
