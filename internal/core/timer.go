// Package core holds pacing helpers shared by the interactive binaries.
package core

import "time"

// maxCatchUp bounds the ticks reported after a long stall, so a paused or
// dragged window does not trigger a burst of generations.
const maxCatchUp = 4

// FixedStep paces simulation updates at a steady ticks-per-second rate,
// independent of the display frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// TPS returns the current tick rate.
func (f *FixedStep) TPS() int { return int(time.Second / f.step) }

// Due reports how many ticks have elapsed by now, at most maxCatchUp.
func (f *FixedStep) Due(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	ticks := int(f.accumulator / f.step)
	if ticks > maxCatchUp {
		ticks = maxCatchUp
		f.accumulator = 0
		return ticks
	}
	f.accumulator -= time.Duration(ticks) * f.step
	return ticks
}

// ShouldStep reports whether at least one tick is due.
func (f *FixedStep) ShouldStep() bool { return f.Due(time.Now()) > 0 }
