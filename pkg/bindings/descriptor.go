package bindings

import (
	"fmt"

	"github.com/go-drift/viewbind/pkg/convert"
	"github.com/go-drift/viewbind/pkg/keypath"
)

// Descriptor declares how a control binds to a model property: the key
// path it displays, whether user input is checked before it is committed,
// whether display updates animate, and how values are formatted.
//
// Descriptors are immutable. Build them with NewDescriptor.
type Descriptor struct {
	keyPath        keypath.Path
	checkedOnInput bool
	animated       bool
	format         convert.Format
}

// DescriptorOption configures a Descriptor.
type DescriptorOption func(*Descriptor)

// Checked enables or disables the check step before user input is
// committed. Input is checked by default.
func Checked(checked bool) DescriptorOption {
	return func(d *Descriptor) { d.checkedOnInput = checked }
}

// Animated enables or disables animated display updates. Updates are
// applied instantly by default.
func Animated(animated bool) DescriptorOption {
	return func(d *Descriptor) { d.animated = animated }
}

// WithFormat sets the display format.
func WithFormat(f convert.Format) DescriptorOption {
	return func(d *Descriptor) { d.format = f }
}

// NewDescriptor validates expr and returns a descriptor for it. A malformed
// expression fails here, with *keypath.MalformedKeyPathError, rather than
// when the binding is first used.
func NewDescriptor(expr string, opts ...DescriptorOption) (*Descriptor, error) {
	p, err := keypath.Parse(expr)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{
		keyPath:        p,
		checkedOnInput: true,
		format:         convert.DefaultFormat,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error.
func MustDescriptor(expr string, opts ...DescriptorOption) *Descriptor {
	d, err := NewDescriptor(expr, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// KeyPath returns the bound key path.
func (d *Descriptor) KeyPath() keypath.Path { return d.keyPath }

// CheckedOnInput reports whether user input is checked before commit.
func (d *Descriptor) CheckedOnInput() bool { return d.checkedOnInput }

// Animated reports whether model-driven display updates animate.
func (d *Descriptor) Animated() bool { return d.animated }

// Format returns the display format.
func (d *Descriptor) Format() convert.Format { return d.format }

func (d *Descriptor) String() string {
	s := fmt.Sprintf("%s checked=%t animated=%t", d.keyPath, d.checkedOnInput, d.animated)
	if f := d.format.String(); f != "" {
		s += " format=" + f
	}
	return s
}
