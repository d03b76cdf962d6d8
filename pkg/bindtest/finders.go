package bindtest

import (
	"fmt"
	"reflect"

	"github.com/go-drift/viewbind/pkg/bindings"
)

// Finder locates nodes in a view hierarchy.
type Finder interface {
	// Evaluate returns all matching nodes under root, depth first.
	Evaluate(root bindings.Node) []bindings.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []bindings.Node
	finder Finder
}

// Find evaluates f under root.
func Find(root bindings.Node, f Finder) FinderResult {
	return FinderResult{nodes: f.Evaluate(root), finder: f}
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() bindings.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// Adapter returns the first match as a bindings.Adapter. Panics if there is
// no match or the match is not bindable.
func (r FinderResult) Adapter() bindings.Adapter {
	n := r.First()
	a, ok := n.(bindings.Adapter)
	if !ok {
		panic(fmt.Sprintf("%s matched %T, which is not a bindings.Adapter", r.describe(), n))
	}
	return a
}

// All returns all matches in traversal order.
func (r FinderResult) All() []bindings.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type predicateFinder struct {
	fn   func(bindings.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root bindings.Node) []bindings.Node {
	var out []bindings.Node
	bindings.Walk(root, func(n bindings.Node) {
		if f.fn(n) {
			out = append(out, n)
		}
	})
	return out
}

func (f *predicateFinder) Description() string { return f.desc }

// ByID matches nodes implementing bindings.Identified with the given ID.
func ByID(id string) Finder {
	return &predicateFinder{
		desc: fmt.Sprintf("ByID(%q)", id),
		fn: func(n bindings.Node) bool {
			ident, ok := n.(bindings.Identified)
			return ok && ident.ID() == id
		},
	}
}

// ByType matches nodes of type T.
func ByType[T bindings.Node]() Finder {
	t := reflect.TypeFor[T]()
	return &predicateFinder{
		desc: fmt.Sprintf("ByType(%s)", t),
		fn:   func(n bindings.Node) bool { return reflect.TypeOf(n) == t },
	}
}

// ByPredicate matches nodes for which fn returns true.
func ByPredicate(desc string, fn func(bindings.Node) bool) Finder {
	return &predicateFinder{desc: desc, fn: fn}
}
