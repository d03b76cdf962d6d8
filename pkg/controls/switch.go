package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/animation"
	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// Switch is an on/off control. Animated updates slide the thumb; the value
// itself changes at once.
type Switch struct {
	Name      string
	Disabled  bool
	Scheduler *animation.Scheduler

	on    bool
	thumb float64
	tr    *animation.Transition
	edits
}

// ID implements bindings.Identified.
func (s *Switch) ID() string { return s.Name }

// Children implements bindings.Node.
func (s *Switch) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (s *Switch) Converter() convert.Converter { return convert.Bool{} }

// SupportsModelType implements bindings.Adapter.
func (s *Switch) SupportsModelType(t reflect.Type) bool {
	return convert.Bool{}.Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (s *Switch) DisplayValue(native any, animated bool) {
	on, ok := native.(bool)
	if !ok {
		return
	}
	s.apply(func() { s.set(on, animated) })
}

// CurrentNativeValue implements bindings.Adapter.
func (s *Switch) CurrentNativeValue() any { return s.on }

// Enabled implements bindings.Adapter.
func (s *Switch) Enabled() bool { return !s.Disabled && !s.disposed }

// On reports the switch state.
func (s *Switch) On() bool { return s.on }

// Thumb returns the thumb position, 0 for off and 1 for on.
func (s *Switch) Thumb() float64 { return s.thumb }

// Animating reports whether the thumb is sliding.
func (s *Switch) Animating() bool {
	return s.tr != nil && s.tr.IsAnimating()
}

// Toggle flips the switch as the user would.
func (s *Switch) Toggle() {
	if !s.Enabled() {
		return
	}
	s.set(!s.on, true)
	s.notify()
}

// Dispose stops animation and detaches bindings.
func (s *Switch) Dispose() {
	if s.tr != nil {
		s.tr.Dispose()
	}
	s.dispose()
}

func (s *Switch) set(on, animated bool) {
	s.on = on
	target := 0.0
	if on {
		target = 1
	}
	if s.tr == nil {
		s.tr = animation.NewTransition(s.Scheduler, animation.DefaultTransitionDuration, func(v float64) {
			s.thumb = v
		})
	}
	if animated {
		s.tr.Animate(s.thumb, target)
	} else {
		s.tr.Jump(target)
	}
}
