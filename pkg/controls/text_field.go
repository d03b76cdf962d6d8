package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// TextField is an editable single-line text input.
type TextField struct {
	Name        string
	Placeholder string
	Disabled    bool

	text string
	edits
}

// ID implements bindings.Identified.
func (f *TextField) ID() string { return f.Name }

// Children implements bindings.Node.
func (f *TextField) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (f *TextField) Converter() convert.Converter { return convert.Text{} }

// SupportsModelType implements bindings.Adapter.
func (f *TextField) SupportsModelType(t reflect.Type) bool {
	return convert.Text{}.Supports(t)
}

// DisplayValue implements bindings.Adapter. Text changes are never animated.
func (f *TextField) DisplayValue(native any, _ bool) {
	s, ok := native.(string)
	if !ok {
		return
	}
	f.apply(func() { f.text = s })
}

// CurrentNativeValue implements bindings.Adapter.
func (f *TextField) CurrentNativeValue() any { return f.text }

// Enabled implements bindings.Adapter.
func (f *TextField) Enabled() bool { return !f.Disabled && !f.disposed }

// Text returns the field contents.
func (f *TextField) Text() string { return f.text }

// Type replaces the field contents as the user would.
func (f *TextField) Type(s string) {
	if !f.Enabled() {
		return
	}
	f.text = s
	f.notify()
}

// Dispose detaches bindings.
func (f *TextField) Dispose() { f.dispose() }
