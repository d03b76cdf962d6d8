package controls

import "github.com/go-drift/viewbind/pkg/bindings"

// Panel groups controls into a view hierarchy.
type Panel struct {
	Name string
	Kids []bindings.Node
}

// Children implements bindings.Node.
func (p *Panel) Children() []bindings.Node { return p.Kids }

// Dispose disposes every control in the subtree. Bindings on them are
// detached.
func (p *Panel) Dispose() {
	for _, kid := range p.Kids {
		if d, ok := kid.(interface{ Dispose() }); ok {
			d.Dispose()
		}
	}
}
