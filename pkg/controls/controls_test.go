package controls_test

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/viewbind/pkg/animation"
	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/bindtest"
	"github.com/go-drift/viewbind/pkg/controls"
	"github.com/go-drift/viewbind/pkg/observe"
)

// Compile-time interface checks.
var (
	_ bindings.Adapter    = (*controls.Slider)(nil)
	_ bindings.Adapter    = (*controls.Progress)(nil)
	_ bindings.Adapter    = (*controls.Switch)(nil)
	_ bindings.Adapter    = (*controls.TextField)(nil)
	_ bindings.Adapter    = (*controls.Label)(nil)
	_ bindings.Adapter    = (*controls.SegmentedControl)(nil)
	_ bindings.Adapter    = (*controls.Stepper)(nil)
	_ bindings.Disposer   = (*controls.Slider)(nil)
	_ bindings.Identified = (*controls.Stepper)(nil)
	_ bindings.Node       = (*controls.Panel)(nil)
)

func newScheduler() (*animation.Scheduler, *bindtest.Frames) {
	fr := bindtest.NewFrames()
	return fr.Scheduler, fr
}

func countEdits(a bindings.Adapter) *int {
	n := new(int)
	a.ObserveUserEdits(func() { *n++ })
	return n
}

func TestSliderAnimatedDisplay(t *testing.T) {
	sched, fr := newScheduler()
	s := &controls.Slider{Min: 0, Max: 1, Scheduler: sched}
	edits := countEdits(s)

	s.DisplayValue(0.5, false)
	s.DisplayValue(0.9, true)
	if !s.IsAnimating() {
		t.Fatal("expected animation")
	}
	if s.Value() != 0.5 {
		t.Errorf("Value before first frame = %v, want 0.5", s.Value())
	}

	fr.Pump(animation.DefaultTransitionDuration / 2)
	if v := s.Value(); v <= 0.5 || v >= 0.9 {
		t.Errorf("mid-animation Value = %v, want between 0.5 and 0.9", v)
	}

	fr.Pump(animation.DefaultTransitionDuration)
	if s.IsAnimating() || s.Value() != 0.9 {
		t.Errorf("after duration: animating=%t value=%v", s.IsAnimating(), s.Value())
	}
	if *edits != 0 {
		t.Errorf("programmatic display fired %d edits", *edits)
	}
}

func TestSliderLatestDisplayWins(t *testing.T) {
	sched, fr := newScheduler()
	s := &controls.Slider{Min: 0, Max: 1, Scheduler: sched}
	s.DisplayValue(0.0, false)

	s.DisplayValue(1.0, true)
	fr.Pump(50 * time.Millisecond)
	s.DisplayValue(0.2, true)

	for range 10 {
		fr.Pump(50 * time.Millisecond)
	}
	if s.Value() != 0.2 {
		t.Errorf("Value = %v, want 0.2 from the latest request", s.Value())
	}
}

func TestSliderDragCancelsAnimation(t *testing.T) {
	sched, fr := newScheduler()
	s := &controls.Slider{Min: 0, Max: 1, Scheduler: sched}
	edits := countEdits(s)
	s.DisplayValue(0.1, false)
	s.DisplayValue(0.9, true)

	s.Drag(0.4)
	if s.IsAnimating() {
		t.Error("drag should cancel the animation")
	}
	fr.Pump(time.Second)
	if s.Value() != 0.4 {
		t.Errorf("Value = %v, want dragged 0.4", s.Value())
	}
	if *edits != 1 {
		t.Errorf("edits = %d, want 1", *edits)
	}

	s.Drag(3)
	if s.Value() != 1 {
		t.Errorf("drag beyond Max = %v, want clamped 1", s.Value())
	}
}

func TestDisabledControlsIgnoreInput(t *testing.T) {
	s := &controls.Slider{Max: 1, Disabled: true}
	sw := &controls.Switch{Disabled: true}
	tf := &controls.TextField{Disabled: true}
	sc := &controls.SegmentedControl{Options: []string{"a", "b"}, Disabled: true}
	st := &controls.Stepper{Max: 10, Disabled: true}
	total := 0
	for _, a := range []bindings.Adapter{s, sw, tf, sc, st} {
		a.ObserveUserEdits(func() { total++ })
		if a.Enabled() {
			t.Errorf("%T reports enabled", a)
		}
	}

	s.Drag(0.5)
	sw.Toggle()
	tf.Type("x")
	sc.Select(1)
	st.Increment()

	if total != 0 {
		t.Errorf("disabled controls fired %d edits", total)
	}
	if s.Value() != 0 || sw.On() || tf.Text() != "" || sc.Selected() != 0 || st.Value() != 0 {
		t.Error("disabled controls changed state")
	}
}

func TestSwitchAnimatesThumb(t *testing.T) {
	sched, fr := newScheduler()
	sw := &controls.Switch{Scheduler: sched}
	edits := countEdits(sw)

	sw.DisplayValue(true, true)
	if !sw.On() || !sw.Animating() {
		t.Fatalf("on=%t animating=%t, want both", sw.On(), sw.Animating())
	}
	fr.Pump(animation.DefaultTransitionDuration)
	if sw.Animating() || sw.Thumb() != 1 {
		t.Errorf("after duration: animating=%t thumb=%v", sw.Animating(), sw.Thumb())
	}

	sw.DisplayValue(false, false)
	if sw.Animating() || sw.Thumb() != 0 {
		t.Error("unanimated display should jump the thumb")
	}
	if *edits != 0 {
		t.Errorf("programmatic display fired %d edits", *edits)
	}

	sw.Toggle()
	if !sw.On() || *edits != 1 {
		t.Errorf("Toggle: on=%t edits=%d", sw.On(), *edits)
	}
}

func TestStepper(t *testing.T) {
	st := &controls.Stepper{Min: 0, Max: 1, Step: 0.5}
	edits := countEdits(st)
	st.Increment()
	st.Increment()
	st.Increment()
	if st.Value() != 1 {
		t.Errorf("Value = %v, want clamped 1", st.Value())
	}
	if *edits != 2 {
		t.Errorf("edits = %d, want 2 (no edit at the limit)", *edits)
	}
	st.Decrement()
	if st.Value() != 0.5 {
		t.Errorf("Value = %v, want 0.5", st.Value())
	}
}

func TestSegmentedControlSelect(t *testing.T) {
	sc := &controls.SegmentedControl{Options: []string{"low", "mid", "high"}}
	edits := countEdits(sc)
	sc.Select(2)
	sc.Select(7)
	if sc.Selected() != 2 || *edits != 1 {
		t.Errorf("selected=%d edits=%d", sc.Selected(), *edits)
	}
	sc.DisplayValue(0, false)
	if sc.Selected() != 0 || *edits != 1 {
		t.Error("DisplayValue should select without an edit")
	}
}

func TestLabelTruncation(t *testing.T) {
	l := &controls.Label{MaxWidth: 50}
	l.DisplayValue("Hello, world", false)

	if l.Text() != "Hello, world" {
		t.Errorf("Text = %q", l.Text())
	}
	got := l.Rendered()
	if !strings.HasSuffix(got, "…") || !strings.HasPrefix("Hello, world", strings.TrimSuffix(got, "…")) {
		t.Fatalf("Rendered = %q, want a prefix ending in an ellipsis", got)
	}
	if w := font.MeasureString(basicfont.Face7x13, got); w > fixed.I(50) {
		t.Errorf("Rendered width %v exceeds 50px", w.Ceil())
	}

	l.DisplayValue("short", false)
	if l.Rendered() != "short" {
		t.Errorf("Rendered = %q, want untouched", l.Rendered())
	}
	if l.Enabled() {
		t.Error("labels are never enabled")
	}
}

func TestPanelDisposeDetachesBindings(t *testing.T) {
	center := observe.NewCenter()
	coord := bindings.NewCoordinator(center, bindings.WithErrorHandler(&bindtest.RecordingHandler{}))
	prefs := bindtest.NewPreferences()

	vol := &controls.Slider{Name: "volume", Max: 1}
	muted := &controls.Switch{Name: "muted"}
	form := &controls.Panel{Kids: []bindings.Node{vol, &controls.Panel{Kids: []bindings.Node{muted}}}}
	sheet := bindings.Sheet{
		"volume": bindings.MustDescriptor("settings.volume"),
		"muted":  bindings.MustDescriptor("settings.muted"),
	}
	if _, err := coord.BindTree(form, sheet, prefs); err != nil {
		t.Fatal(err)
	}

	form.Dispose()
	if n := len(coord.Contexts()); n != 0 {
		t.Errorf("%d contexts survive disposal", n)
	}
	if n := center.SubscriberCount(prefs); n != 0 {
		t.Errorf("%d subscriptions survive disposal", n)
	}
}

func TestBoundSliderScenario(t *testing.T) {
	sched, fr := newScheduler()
	center := observe.NewCenter()
	coord := bindings.NewCoordinator(center)
	prefs := bindtest.NewPreferences()

	s := &controls.Slider{Name: "volume", Min: 0, Max: 1, Scheduler: sched}
	ctx, err := coord.Attach(s, bindings.MustDescriptor("settings.volume", bindings.Animated(true)), prefs)
	if err != nil {
		t.Fatal(err)
	}
	if s.Value() != 0.5 || s.IsAnimating() {
		t.Fatalf("initial display: value=%v animating=%t", s.Value(), s.IsAnimating())
	}

	s.Drag(0.8)
	if prefs.Settings.Volume != 0.8 {
		t.Fatalf("model = %v after drag", prefs.Settings.Volume)
	}
	if s.IsAnimating() {
		t.Error("own commit started an animation")
	}

	if err := center.Set(prefs, "settings.volume", 0.2); err != nil {
		t.Fatal(err)
	}
	if !s.IsAnimating() {
		t.Fatal("external change should animate")
	}
	fr.Pump(animation.DefaultTransitionDuration)
	if s.Value() != 0.2 {
		t.Errorf("Value = %v, want 0.2", s.Value())
	}

	if err := ctx.Detach(); err != nil {
		t.Fatal(err)
	}
	_ = center.Set(prefs, "settings.volume", 0.9)
	if s.IsAnimating() || s.Value() != 0.2 {
		t.Error("detached slider still follows the model")
	}
}

func TestAnimatedDisplayReportsTargetValue(t *testing.T) {
	sched, fr := newScheduler()
	s := &controls.Slider{Min: 0, Max: 1, Scheduler: sched}
	p := &controls.Progress{Scheduler: sched}

	s.DisplayValue(0.5, false)
	p.DisplayValue(0.1, false)
	s.DisplayValue(0.2, true)
	p.DisplayValue(0.9, true)
	fr.Pump(animation.DefaultTransitionDuration / 2)

	if v := s.Value(); v == 0.2 || v == 0.5 {
		t.Errorf("slider thumb = %v, want a mid-animation position", v)
	}
	if got := s.CurrentNativeValue(); got != 0.2 {
		t.Errorf("slider CurrentNativeValue = %v, want target 0.2", got)
	}
	if got := p.CurrentNativeValue(); got != 0.9 {
		t.Errorf("progress CurrentNativeValue = %v, want target 0.9", got)
	}
	if v := p.Value(); v <= 0.1 || v >= 0.9 {
		t.Errorf("progress shown = %v, want between 0.1 and 0.9", v)
	}
}

func TestCommitDuringAnimationWritesTarget(t *testing.T) {
	sched, fr := newScheduler()
	center := observe.NewCenter()
	coord := bindings.NewCoordinator(center)
	prefs := bindtest.NewPreferences()

	s := &controls.Slider{Name: "volume", Min: 0, Max: 1, Scheduler: sched}
	if _, err := coord.Attach(s, bindings.MustDescriptor("settings.volume", bindings.Animated(true)), prefs); err != nil {
		t.Fatal(err)
	}
	if err := center.Set(prefs, "settings.volume", 0.2); err != nil {
		t.Fatal(err)
	}
	fr.Pump(100 * time.Millisecond)
	if !s.IsAnimating() {
		t.Fatal("expected the thumb to still be moving")
	}

	if err := coord.CommitAll(); err != nil {
		t.Fatal(err)
	}
	if got := prefs.Settings.Volume; got != 0.2 {
		t.Errorf("model after commit mid-animation = %v, want 0.2", got)
	}
}
