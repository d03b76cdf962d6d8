// Package animation provides the value transitions used by bound controls
// when a display update is animated.
//
// # Core Components
//
//   - [Scheduler]: owns the set of active tickers and a [Clock]. The host
//     frame loop calls [Scheduler.Step] once per frame.
//
//   - [Ticker]: the low-level per-frame callback primitive.
//
//   - [Transition]: interpolates a float64 from one value to another over a
//     fixed duration with an easing curve. Starting a new transition
//     supersedes the one in flight, so the latest request always wins.
//
// # Basic Usage
//
//	sched := animation.NewScheduler(nil)
//	tr := animation.NewTransition(sched, 250*time.Millisecond, func(v float64) {
//	    slider.paint(v)
//	})
//	tr.Animate(0.5, 0.8)
//
//	// once per frame, from the host frame loop
//	sched.Step()
package animation

import (
	"sync"
	"time"
)

// Scheduler drives tickers from the host frame loop.
//
// Tickers may be started from any goroutine but callbacks only run inside
// Step, which the host calls on its UI thread.
type Scheduler struct {
	clock Clock

	mu     sync.Mutex
	active map[*Ticker]struct{}
}

// NewScheduler creates a scheduler reading time from clock.
// A nil clock means the system clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &Scheduler{
		clock:  clock,
		active: make(map[*Ticker]struct{}),
	}
}

// DefaultScheduler is used by controls that were not given a scheduler.
var DefaultScheduler = NewScheduler(nil)

// Now returns the current time from the scheduler's clock.
func (s *Scheduler) Now() time.Time { return s.clock.Now() }

// Step advances all active tickers.
// This should be called once per frame from the host.
func (s *Scheduler) Step() {
	s.mu.Lock()
	if len(s.active) == 0 {
		s.mu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers.
	tickers := make([]*Ticker, 0, len(s.active))
	for ticker := range s.active {
		tickers = append(tickers, ticker)
	}
	s.mu.Unlock()

	now := s.clock.Now()
	for _, ticker := range tickers {
		if ticker.IsActive() && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func (s *Scheduler) HasActiveTickers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active) > 0
}

// StepTickers advances the tickers of DefaultScheduler.
func StepTickers() { DefaultScheduler.Step() }

// Ticker calls a callback on each frame while active.
//
// Most code should use [Transition] rather than Ticker.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	sched    *Scheduler
	callback func(elapsed time.Duration)
	start    time.Time
}

// NewTicker creates a new ticker on s with the given callback.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		sched:    s,
		callback: callback,
	}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[t]; ok {
		return
	}
	t.start = s.clock.Now()
	s.active[t] = struct{}{}
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	s := t.sched
	s.mu.Lock()
	delete(s.active, t)
	s.mu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[t]
	return ok
}
