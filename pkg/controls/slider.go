package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/animation"
	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// Slider selects a value in [Min, Max] by dragging a thumb.
//
// Animated display updates move the thumb over
// animation.DefaultTransitionDuration. A new update supersedes one in
// flight, and a user drag cancels it. The slider's value is the target of
// the latest update as soon as it is displayed; only the thumb lags behind.
type Slider struct {
	// Name identifies the slider in a binding sheet.
	Name string
	// Min is the value at the leading end of the track.
	Min float64
	// Max is the value at the trailing end of the track.
	Max float64
	// Disabled disables interaction when true.
	Disabled bool
	// Scheduler drives thumb animation. Nil uses animation.DefaultScheduler.
	Scheduler *animation.Scheduler

	value float64 // logical value
	thumb float64 // drawn position
	tr    *animation.Transition
	edits
}

// ID implements bindings.Identified.
func (s *Slider) ID() string { return s.Name }

// Children implements bindings.Node.
func (s *Slider) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (s *Slider) Converter() convert.Converter {
	return convert.Float{Min: s.Min, Max: s.Max}
}

// SupportsModelType implements bindings.Adapter.
func (s *Slider) SupportsModelType(t reflect.Type) bool {
	return s.Converter().Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (s *Slider) DisplayValue(native any, animated bool) {
	v, ok := asFloat(native)
	if !ok {
		return
	}
	v = clamp(v, s.Min, s.Max)
	s.apply(func() {
		s.value = v
		if animated {
			s.transition().Animate(s.thumb, v)
		} else {
			s.transition().Jump(v)
		}
	})
}

// CurrentNativeValue implements bindings.Adapter.
func (s *Slider) CurrentNativeValue() any { return s.value }

// Enabled implements bindings.Adapter.
func (s *Slider) Enabled() bool { return !s.Disabled && !s.disposed }

// Value returns the thumb position, including mid-animation positions.
func (s *Slider) Value() float64 { return s.thumb }

// IsAnimating reports whether the thumb is moving to a new value.
func (s *Slider) IsAnimating() bool {
	return s.tr != nil && s.tr.IsAnimating()
}

// Drag moves the thumb to v as the user would.
func (s *Slider) Drag(v float64) {
	if !s.Enabled() {
		return
	}
	if s.tr != nil {
		s.tr.Stop()
	}
	s.value = clamp(v, s.Min, s.Max)
	s.thumb = s.value
	s.notify()
}

// Dispose stops animation and detaches bindings.
func (s *Slider) Dispose() {
	if s.tr != nil {
		s.tr.Dispose()
	}
	s.dispose()
}

func (s *Slider) transition() *animation.Transition {
	if s.tr == nil {
		s.tr = animation.NewTransition(s.Scheduler, animation.DefaultTransitionDuration, func(v float64) {
			s.thumb = v
		})
	}
	return s.tr
}
