package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// Stepper changes a value in fixed increments between Min and Max.
type Stepper struct {
	Name     string
	Min      float64
	Max      float64
	Step     float64 // zero means 1
	Disabled bool

	value float64
	edits
}

// ID implements bindings.Identified.
func (s *Stepper) ID() string { return s.Name }

// Children implements bindings.Node.
func (s *Stepper) Children() []bindings.Node { return nil }

func (s *Stepper) step() float64 {
	if s.Step <= 0 {
		return 1
	}
	return s.Step
}

// Converter implements bindings.Adapter.
func (s *Stepper) Converter() convert.Converter {
	return convert.Float{Min: s.Min, Max: s.Max, Resolution: s.step()}
}

// SupportsModelType implements bindings.Adapter.
func (s *Stepper) SupportsModelType(t reflect.Type) bool {
	return s.Converter().Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (s *Stepper) DisplayValue(native any, _ bool) {
	v, ok := asFloat(native)
	if !ok {
		return
	}
	s.apply(func() { s.value = clamp(v, s.Min, s.Max) })
}

// CurrentNativeValue implements bindings.Adapter.
func (s *Stepper) CurrentNativeValue() any { return s.value }

// Enabled implements bindings.Adapter.
func (s *Stepper) Enabled() bool { return !s.Disabled && !s.disposed }

// Value returns the current value.
func (s *Stepper) Value() float64 { return s.value }

// Increment adds one step, as the user would.
func (s *Stepper) Increment() { s.move(s.step()) }

// Decrement subtracts one step, as the user would.
func (s *Stepper) Decrement() { s.move(-s.step()) }

func (s *Stepper) move(delta float64) {
	if !s.Enabled() {
		return
	}
	next := clamp(s.value+delta, s.Min, s.Max)
	if next == s.value {
		return
	}
	s.value = next
	s.notify()
}

// Dispose detaches bindings.
func (s *Stepper) Dispose() { s.dispose() }
