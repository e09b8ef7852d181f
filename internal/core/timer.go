package core

import "time"

// FixedStep converts frame times into whole ticks at a steady rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// maxCatchUp bounds the ticks reported for one long frame.
const maxCatchUp = 5

// NewFixedStep constructs a FixedStep targeting tps ticks per second. The
// first call to Advance reports one tick.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{}
	f.SetTPS(tps)
	f.accumulator = f.step
	return f
}

// SetTPS changes the tick rate; non-positive values select 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Advance records a frame at now and returns the number of ticks due.
func (f *FixedStep) Advance(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	if delta := now.Sub(f.last); delta > 0 {
		f.accumulator += delta
	}
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == maxCatchUp {
		f.accumulator = 0
	}
	return n
}
