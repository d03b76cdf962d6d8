package animation

import "time"

// DefaultTransitionDuration is the fixed short duration of animated
// display updates.
const DefaultTransitionDuration = 250 * time.Millisecond

// Transition interpolates a float64 value over a fixed duration.
//
// Only one interpolation runs at a time: Animate and Jump both supersede an
// in-flight interpolation, so no intermediate state of an older request is
// ever reported after a newer one was issued.
//
// Transition is not safe for concurrent use; drive it from the UI thread.
type Transition struct {
	// Duration is the length of an interpolation.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	sched      *Scheduler
	ticker     *Ticker
	value      float64
	startValue float64
	target     float64
	generation int

	onValue        func(float64)
	doneListeners  map[int]func()
	nextListenerID int
}

// NewTransition creates a transition on s (DefaultScheduler when nil).
// onValue receives every intermediate and final value.
func NewTransition(s *Scheduler, duration time.Duration, onValue func(float64)) *Transition {
	if s == nil {
		s = DefaultScheduler
	}
	return &Transition{
		Duration:      duration,
		Curve:         EaseInOut,
		sched:         s,
		onValue:       onValue,
		doneListeners: make(map[int]func()),
	}
}

// Animate interpolates from from to to, superseding any running
// interpolation. It returns immediately; values arrive on scheduler steps.
func (t *Transition) Animate(from, to float64) {
	t.Stop()
	t.generation++
	t.startValue = from
	t.target = to
	t.value = from

	if t.Duration <= 0 || from == to {
		t.finish()
		return
	}

	gen := t.generation
	t.ticker = t.sched.NewTicker(func(elapsed time.Duration) {
		if gen != t.generation {
			return
		}
		t.tick(elapsed)
	})
	t.ticker.Start()
}

// Jump stops any running interpolation and sets the value immediately.
func (t *Transition) Jump(v float64) {
	t.Stop()
	t.generation++
	t.startValue = v
	t.target = v
	t.value = v
	t.emit()
}

func (t *Transition) tick(elapsed time.Duration) {
	progress := float64(elapsed) / float64(t.Duration)
	if progress >= 1.0 {
		t.finish()
		return
	}
	if progress < 0 {
		progress = 0
	}

	eased := progress
	if t.Curve != nil {
		eased = t.Curve(progress)
	}
	t.value = t.startValue + (t.target-t.startValue)*eased
	t.emit()
}

func (t *Transition) finish() {
	t.Stop()
	t.value = t.target
	t.emit()
	for _, listener := range t.doneListeners {
		listener()
	}
}

func (t *Transition) emit() {
	if t.onValue != nil {
		t.onValue(t.value)
	}
}

// Stop halts the interpolation at the current value.
func (t *Transition) Stop() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// IsAnimating returns true while an interpolation is running.
func (t *Transition) IsAnimating() bool {
	return t.ticker != nil && t.ticker.IsActive()
}

// Value returns the most recently emitted value.
func (t *Transition) Value() float64 {
	return t.value
}

// Target returns the value the current (or last) interpolation ends at.
func (t *Transition) Target() float64 {
	return t.target
}

// AddDoneListener adds a callback fired when an interpolation completes.
// Superseded interpolations never complete. Returns an unsubscribe function.
func (t *Transition) AddDoneListener(fn func()) func() {
	id := t.nextListenerID
	t.nextListenerID++
	t.doneListeners[id] = fn
	return func() {
		delete(t.doneListeners, id)
	}
}

// Dispose stops the transition and drops its listeners.
func (t *Transition) Dispose() {
	t.Stop()
	t.doneListeners = make(map[int]func())
	t.onValue = nil
}
