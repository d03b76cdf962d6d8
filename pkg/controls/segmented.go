package controls

import (
	"reflect"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// SegmentedControl selects one of a fixed set of options. Its native value
// is the selected index.
type SegmentedControl struct {
	Name     string
	Options  []string
	Disabled bool

	selected int
	edits
}

// ID implements bindings.Identified.
func (c *SegmentedControl) ID() string { return c.Name }

// Children implements bindings.Node.
func (c *SegmentedControl) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (c *SegmentedControl) Converter() convert.Converter {
	return convert.Choice{Options: c.Options}
}

// SupportsModelType implements bindings.Adapter.
func (c *SegmentedControl) SupportsModelType(t reflect.Type) bool {
	return c.Converter().Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (c *SegmentedControl) DisplayValue(native any, _ bool) {
	i, ok := native.(int)
	if !ok {
		return
	}
	c.apply(func() { c.selected = i })
}

// CurrentNativeValue implements bindings.Adapter.
func (c *SegmentedControl) CurrentNativeValue() any { return c.selected }

// Enabled implements bindings.Adapter.
func (c *SegmentedControl) Enabled() bool { return !c.Disabled && !c.disposed }

// Selected returns the selected index.
func (c *SegmentedControl) Selected() int { return c.selected }

// Select picks option i as the user would. Out-of-range indexes are ignored.
func (c *SegmentedControl) Select(i int) {
	if !c.Enabled() || i < 0 || i >= len(c.Options) {
		return
	}
	c.selected = i
	c.notify()
}

// Dispose detaches bindings.
func (c *SegmentedControl) Dispose() { c.dispose() }
