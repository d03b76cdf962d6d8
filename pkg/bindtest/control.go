package bindtest

import (
	"reflect"
	"slices"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// DisplayCall records one DisplayValue call on a FakeControl.
type DisplayCall struct {
	Value    any
	Animated bool
}

// FakeControl is a scripted bindings.Adapter. It records every display,
// lets tests simulate user edits with Edit, and announces disposal.
type FakeControl struct {
	Name     string
	Conv     convert.Converter
	Disabled bool

	value     any
	displays  []DisplayCall
	observers map[int]func()
	disposers map[int]func()
	nextID    int
}

// NewFakeControl returns an enabled control named name using conv.
func NewFakeControl(name string, conv convert.Converter) *FakeControl {
	return &FakeControl{Name: name, Conv: conv}
}

// ID implements bindings.Identified.
func (f *FakeControl) ID() string { return f.Name }

// Children implements bindings.Node.
func (f *FakeControl) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (f *FakeControl) Converter() convert.Converter { return f.Conv }

// SupportsModelType implements bindings.Adapter.
func (f *FakeControl) SupportsModelType(t reflect.Type) bool {
	return f.Conv != nil && f.Conv.Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (f *FakeControl) DisplayValue(native any, animated bool) {
	f.value = native
	f.displays = append(f.displays, DisplayCall{Value: native, Animated: animated})
}

// CurrentNativeValue implements bindings.Adapter.
func (f *FakeControl) CurrentNativeValue() any { return f.value }

// ObserveUserEdits implements bindings.Adapter.
func (f *FakeControl) ObserveUserEdits(fn func()) (cancel func()) {
	return f.add(&f.observers, fn)
}

// Enabled implements bindings.Adapter.
func (f *FakeControl) Enabled() bool { return !f.Disabled }

// OnDispose implements bindings.Disposer.
func (f *FakeControl) OnDispose(fn func()) (cancel func()) {
	return f.add(&f.disposers, fn)
}

// Edit simulates the user changing the control to native. A disabled
// control ignores it.
func (f *FakeControl) Edit(native any) {
	if f.Disabled {
		return
	}
	f.value = native
	notify(f.observers)
}

// Dispose simulates the control being destroyed.
func (f *FakeControl) Dispose() {
	notify(f.disposers)
	f.disposers = nil
}

// Displays returns the recorded DisplayValue calls.
func (f *FakeControl) Displays() []DisplayCall {
	return slices.Clone(f.displays)
}

// LastDisplay returns the most recent DisplayValue call.
func (f *FakeControl) LastDisplay() (DisplayCall, bool) {
	if len(f.displays) == 0 {
		return DisplayCall{}, false
	}
	return f.displays[len(f.displays)-1], true
}

// ResetDisplays forgets the recorded DisplayValue calls.
func (f *FakeControl) ResetDisplays() { f.displays = nil }

// ObserverCount returns the number of registered edit observers.
func (f *FakeControl) ObserverCount() int { return len(f.observers) }

func (f *FakeControl) add(set *map[int]func(), fn func()) func() {
	if *set == nil {
		*set = make(map[int]func())
	}
	id := f.nextID
	f.nextID++
	(*set)[id] = fn
	return func() { delete(*set, id) }
}

func notify(set map[int]func()) {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := set[id]; ok {
			fn()
		}
	}
}
