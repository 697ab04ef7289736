// Package sim simulates an open-drain I2C bus on the host so the slave
// engine can run against a bit-banged master without hardware.
//
// Lines are wired-AND with pull-ups: a line is high unless some attached
// pin drives it low. Every level change is delivered synchronously to the
// line's observers, which is how the simulated capture timer raises its
// interrupt.
package sim

import (
	"softi2c/core"
)

// Line is one open-drain bus line. Like a logic trace it remembers the
// previous level so observers can tell rising from falling.
type Line struct {
	Label string

	pins      []*Pin
	from      bool
	to        bool
	observers []func(*Line)

	// Transitions counts level changes since creation
	Transitions int
}

// NewLine returns a released (pulled-up) line
func NewLine(label string) *Line {
	return &Line{Label: label, from: true, to: true}
}

// Hi reports whether the line is currently high
func (l *Line) Hi() bool { return l.to }

// Lo reports whether the line is currently low
func (l *Line) Lo() bool { return !l.to }

// Rising reports whether the last change went low to high
func (l *Line) Rising() bool { return !l.from && l.to }

// Falling reports whether the last change went high to low
func (l *Line) Falling() bool { return l.from && !l.to }

// Observe registers fn to run after every level change
func (l *Line) Observe(fn func(*Line)) {
	l.observers = append(l.observers, fn)
}

// NewPin attaches a new open-drain driver to the line, initially released
func (l *Line) NewPin() *Pin {
	p := &Pin{line: l}
	l.pins = append(l.pins, p)
	return p
}

func (l *Line) update() {
	level := true
	for _, p := range l.pins {
		if p.low {
			level = false
			break
		}
	}
	if level == l.to {
		return
	}
	l.from = l.to
	l.to = level
	l.Transitions++
	for _, fn := range l.observers {
		fn(l)
	}
}

// Pin is one party's open-drain connection to a Line
type Pin struct {
	line *Line
	low  bool
}

var _ core.LinePin = (*Pin)(nil)

// DriveLow pulls the line to 0
func (p *Pin) DriveLow() {
	if p.low {
		return
	}
	p.low = true
	p.line.update()
}

// ReleaseHigh stops driving the line; the pull-up or another pin decides
func (p *Pin) ReleaseHigh() {
	if !p.low {
		return
	}
	p.low = false
	p.line.update()
}

// Get reads the resolved line level
func (p *Pin) Get() bool {
	return p.line.Hi()
}

// Driving reports whether this pin currently holds the line low
func (p *Pin) Driving() bool {
	return p.low
}
