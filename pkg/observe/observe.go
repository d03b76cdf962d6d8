// Package observe provides explicit change notification for model objects.
//
// Go values carry no built-in property observation, so model mutations are
// announced through a [Center]: writers either call [Center.Set], which
// writes through a key path and posts the change, or mutate the model
// themselves and call [Center.Notify]. Subscribers register for a root
// object and a key path; a change at path P reaches every subscriber whose
// path overlaps P (a change to "settings" reaches "settings.retryCount" and
// the other way round).
//
// A Center is injected wherever notifications are needed; there is no
// process-wide instance.
package observe

import (
	"reflect"
	"slices"
	"sync"

	"github.com/go-drift/viewbind/pkg/keypath"
)

// Change describes one model mutation.
type Change struct {
	// Root is the model root the change was posted for.
	Root any
	// Path is the key path that changed.
	Path keypath.Path
	// Origin identifies the poster. Binding contexts post with themselves
	// as origin; external writers usually leave it nil.
	Origin any
}

// Center dispatches change notifications to subscribers.
//
// Subscribe, Notify and Set may be called from any goroutine, but callbacks
// run synchronously on the goroutine that posts. Hosts with a UI thread post
// from that thread.
type Center struct {
	mu     sync.Mutex
	nextID int
	subs   map[rootKey]map[int]*subscription
}

type rootKey struct {
	typ reflect.Type
	ptr uintptr
}

type subscription struct {
	path keypath.Path
	fn   func(Change)
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{subs: make(map[rootKey]map[int]*subscription)}
}

// keyOf identifies roots by pointer identity. Only pointer-like roots can be
// observed because value roots cannot be mutated in place.
func keyOf(root any) (rootKey, bool) {
	v := reflect.ValueOf(root)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return rootKey{}, false
		}
		return rootKey{typ: v.Type(), ptr: v.Pointer()}, true
	}
	return rootKey{}, false
}

// Subscribe registers fn for changes overlapping path under root. The
// returned cancel function is idempotent.
func (c *Center) Subscribe(root any, path keypath.Path, fn func(Change)) (cancel func()) {
	key, ok := keyOf(root)
	if !ok || fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	if c.subs[key] == nil {
		c.subs[key] = make(map[int]*subscription)
	}
	c.subs[key][id] = &subscription{path: path, fn: fn}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs[key], id)
			if len(c.subs[key]) == 0 {
				delete(c.subs, key)
			}
		})
	}
}

// SubscriberCount returns the number of live subscriptions for root.
func (c *Center) SubscriberCount(root any) int {
	key, ok := keyOf(root)
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs[key])
}

// Notify posts a change at path under root on behalf of origin.
// Subscribers are called in subscription order. A subscription cancelled
// by an earlier callback in the same post is not called.
func (c *Center) Notify(root any, path keypath.Path, origin any) {
	key, ok := keyOf(root)
	if !ok {
		return
	}
	c.mu.Lock()
	matched := make([]int, 0, len(c.subs[key]))
	for id, sub := range c.subs[key] {
		if sub.path.Overlaps(path) {
			matched = append(matched, id)
		}
	}
	c.mu.Unlock()

	slices.Sort(matched)
	change := Change{Root: root, Path: path, Origin: origin}
	for _, id := range matched {
		c.mu.Lock()
		sub := c.subs[key][id]
		c.mu.Unlock()
		if sub != nil {
			sub.fn(change)
		}
	}
}

// Set writes value at expr under root and posts the change with a nil origin.
func (c *Center) Set(root any, expr string, value any) error {
	p, err := keypath.Parse(expr)
	if err != nil {
		return err
	}
	res, err := keypath.Resolve(root, p)
	if err != nil {
		return err
	}
	if err := res.Write(value); err != nil {
		return err
	}
	c.Notify(root, p, nil)
	return nil
}
