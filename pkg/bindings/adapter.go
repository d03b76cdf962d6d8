package bindings

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/convert"
)

// Adapter is the binding contract a control implements.
//
// Every control kind implements it differently; the coordinator only talks
// to controls through it.
type Adapter interface {
	// Converter returns the converter for the control's native value type.
	Converter() convert.Converter
	// SupportsModelType reports whether the control can display model
	// values of type t. Incompatible bindings are rejected at attach time.
	SupportsModelType(t reflect.Type) bool
	// DisplayValue shows native on the control. When animated is true and
	// the control kind supports it, the change is interpolated over a short
	// fixed duration; a later call supersedes an in-flight one. Edit
	// observers must not fire for DisplayValue.
	DisplayValue(native any, animated bool)
	// CurrentNativeValue returns what the control presently shows.
	CurrentNativeValue() any
	// ObserveUserEdits registers fn for value changes caused by user
	// interaction. It returns a cancel function.
	ObserveUserEdits(fn func()) (cancel func())
	// Enabled reports whether the control accepts user interaction.
	Enabled() bool
}

// Disposer is implemented by controls that announce their own teardown.
// Bindings on such controls are detached when the control is disposed.
type Disposer interface {
	OnDispose(fn func()) (cancel func())
}

// Identified is implemented by controls that can be looked up in a Sheet.
type Identified interface {
	ID() string
}

// Node is an element of a view hierarchy.
type Node interface {
	Children() []Node
}

// Walk calls fn for n and each of its descendants, depth first.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Sheet maps control identifiers to descriptors. It is the out-of-band
// declaration of which property each control displays.
type Sheet map[string]*Descriptor

// Lookup returns the descriptor declared for id.
func (s Sheet) Lookup(id string) (*Descriptor, bool) {
	d, ok := s[id]
	return d, ok && d != nil
}
