package animation_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/viewbind/pkg/animation"
	"github.com/go-drift/viewbind/pkg/bindtest"
)

func newTestTransition(values *[]float64) (*animation.Transition, *bindtest.Frames) {
	fr := bindtest.NewFrames()
	tr := animation.NewTransition(fr.Scheduler, 100*time.Millisecond, func(v float64) {
		*values = append(*values, v)
	})
	tr.Curve = animation.LinearCurve
	return tr, fr
}

func TestTransition_AnimatesToTarget(t *testing.T) {
	var values []float64
	tr, fr := newTestTransition(&values)

	tr.Animate(0, 1)
	if !tr.IsAnimating() {
		t.Fatal("expected transition to be animating")
	}

	fr.Pump(50 * time.Millisecond)
	if got := tr.Value(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Value at half duration = %v, want 0.5", got)
	}

	fr.Pump(60 * time.Millisecond)
	if tr.IsAnimating() {
		t.Error("expected transition to be finished")
	}
	if tr.Value() != 1 {
		t.Errorf("final Value = %v, want 1", tr.Value())
	}
	if fr.Scheduler.HasActiveTickers() {
		t.Error("scheduler should have no active tickers after completion")
	}
	if last := values[len(values)-1]; last != 1 {
		t.Errorf("last emitted value = %v, want 1", last)
	}
}

func TestTransition_SupersedesInFlight(t *testing.T) {
	var values []float64
	tr, fr := newTestTransition(&values)

	done := 0
	tr.AddDoneListener(func() { done++ })

	tr.Animate(0, 1)
	fr.Pump(50 * time.Millisecond)

	tr.Animate(tr.Value(), 0.2)
	if tr.Target() != 0.2 {
		t.Errorf("Target = %v, want 0.2", tr.Target())
	}

	fr.Pump(200 * time.Millisecond)

	if tr.Value() != 0.2 {
		t.Errorf("final Value = %v, want 0.2", tr.Value())
	}
	if done != 1 {
		t.Errorf("done listener fired %d times, want 1 (superseded transition must not complete)", done)
	}
	for _, v := range values {
		if v > 0.5+1e-9 {
			t.Errorf("emitted %v after the first transition was superseded at 0.5", v)
		}
	}
}

func TestTransition_JumpCancels(t *testing.T) {
	var values []float64
	tr, fr := newTestTransition(&values)

	tr.Animate(0, 1)
	tr.Jump(0.3)
	if tr.IsAnimating() {
		t.Error("Jump should stop the running transition")
	}

	fr.Pump(time.Second)
	if tr.Value() != 0.3 {
		t.Errorf("Value = %v, want 0.3", tr.Value())
	}
}

func TestTransition_ZeroDurationFinishesImmediately(t *testing.T) {
	var values []float64
	tr, _, _ := newTestTransition(&values)
	tr.Duration = 0

	tr.Animate(0, 0.7)
	if tr.IsAnimating() {
		t.Error("zero-duration transition should not animate")
	}
	if tr.Value() != 0.7 {
		t.Errorf("Value = %v, want 0.7", tr.Value())
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	for _, curve := range []func(float64) float64{animation.EaseInOut, animation.EaseOut} {
		if curve(0) != 0 || curve(1) != 1 {
			t.Errorf("curve endpoints = (%v, %v), want (0, 1)", curve(0), curve(1))
		}
		if mid := curve(0.5); mid <= 0 || mid >= 1 {
			t.Errorf("curve(0.5) = %v, want within (0, 1)", mid)
		}
	}
}

func TestNilClockUsesSystemTime(t *testing.T) {
	before := time.Now()
	now := animation.NewScheduler(nil).Now()
	if now.Before(before) || now.After(time.Now()) {
		t.Errorf("scheduler time %v is not the wall clock", now)
	}
}
