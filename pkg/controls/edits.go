package controls

import "slices"

// edits tracks a control's edit observers and dispose hooks. Controls embed
// it to get ObserveUserEdits and OnDispose.
type edits struct {
	observers map[int]func()
	disposers map[int]func()
	nextID    int
	applying  bool
	disposed  bool
}

// ObserveUserEdits registers fn for value changes made by the user.
func (e *edits) ObserveUserEdits(fn func()) (cancel func()) {
	return e.add(&e.observers, fn)
}

// OnDispose registers fn to run when the control is disposed.
func (e *edits) OnDispose(fn func()) (cancel func()) {
	return e.add(&e.disposers, fn)
}

// Disposed reports whether the control was disposed.
func (e *edits) Disposed() bool { return e.disposed }

func (e *edits) add(set *map[int]func(), fn func()) func() {
	if e.disposed {
		return func() {}
	}
	if *set == nil {
		*set = make(map[int]func())
	}
	id := e.nextID
	e.nextID++
	(*set)[id] = fn
	return func() { delete(*set, id) }
}

// apply runs a programmatic update. Edit notifications are swallowed for its
// duration.
func (e *edits) apply(fn func()) {
	e.applying = true
	defer func() { e.applying = false }()
	fn()
}

func (e *edits) notify() {
	if e.applying || e.disposed {
		return
	}
	call(e.observers)
}

func (e *edits) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	call(e.disposers)
	e.observers = nil
	e.disposers = nil
}

func call(set map[int]func()) {
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

// noEdits is returned by display-only controls.
func noEdits() {}

func asFloat(native any) (float64, bool) {
	switch v := native.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if lo >= hi {
		return v
	}
	return min(max(v, lo), hi)
}
