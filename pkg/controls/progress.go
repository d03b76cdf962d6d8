package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/animation"
	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// Progress shows completion from 0.0 to 1.0. It is display-only.
type Progress struct {
	Name      string
	Scheduler *animation.Scheduler

	value float64
	shown float64
	tr    *animation.Transition
	edits
}

// ID implements bindings.Identified.
func (p *Progress) ID() string { return p.Name }

// Children implements bindings.Node.
func (p *Progress) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (p *Progress) Converter() convert.Converter { return convert.Float{Min: 0, Max: 1} }

// SupportsModelType implements bindings.Adapter.
func (p *Progress) SupportsModelType(t reflect.Type) bool {
	return p.Converter().Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (p *Progress) DisplayValue(native any, animated bool) {
	v, ok := asFloat(native)
	if !ok {
		return
	}
	v = clamp(v, 0, 1)
	if p.tr == nil {
		p.tr = animation.NewTransition(p.Scheduler, animation.DefaultTransitionDuration, func(v float64) {
			p.shown = v
		})
	}
	p.value = v
	if animated {
		p.tr.Animate(p.shown, v)
	} else {
		p.tr.Jump(v)
	}
}

// CurrentNativeValue implements bindings.Adapter.
func (p *Progress) CurrentNativeValue() any { return p.value }

// ObserveUserEdits implements bindings.Adapter. Progress never changes by
// user interaction.
func (p *Progress) ObserveUserEdits(func()) (cancel func()) { return noEdits }

// Enabled implements bindings.Adapter.
func (p *Progress) Enabled() bool { return false }

// Value returns the shown fraction, including mid-animation positions.
func (p *Progress) Value() float64 { return p.shown }

// Dispose stops animation and detaches bindings.
func (p *Progress) Dispose() {
	if p.tr != nil {
		p.tr.Dispose()
	}
	p.dispose()
}
