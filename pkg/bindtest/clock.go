package bindtest

import (
	"time"

	"github.com/go-drift/viewbind/pkg/animation"
)

// Frames drives an animation.Scheduler from a manual clock, so transition
// tests pump frames instead of sleeping.
type Frames struct {
	// Scheduler is the scheduler to hand to controls and transitions.
	Scheduler *animation.Scheduler

	start time.Time
	now   time.Time
	count int
}

// NewFrames returns Frames whose clock starts at a fixed epoch.
func NewFrames() *Frames {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &Frames{start: epoch, now: epoch}
	f.Scheduler = animation.NewScheduler(f)
	return f
}

// Now implements animation.Clock.
func (f *Frames) Now() time.Time { return f.now }

// Elapsed returns the time pumped since NewFrames.
func (f *Frames) Elapsed() time.Duration { return f.now.Sub(f.start) }

// Count returns the number of frames pumped.
func (f *Frames) Count() int { return f.count }

// Pump advances the clock by d and runs one frame.
func (f *Frames) Pump(d time.Duration) {
	f.now = f.now.Add(d)
	f.count++
	f.Scheduler.Step()
}

// Settle pumps frames of length d until no ticker is active, giving up after
// max frames. It returns the number of frames pumped.
func (f *Frames) Settle(d time.Duration, max int) int {
	n := 0
	for n < max && f.Scheduler.HasActiveTickers() {
		f.Pump(d)
		n++
	}
	return n
}
