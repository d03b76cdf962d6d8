package bindtest

import (
	"sync"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/errors"
)

// Event is one delegate callback.
type Event struct {
	Kind    string // "check-ok", "check-failed", "commit-ok" or "commit-failed"
	Context *bindings.Context
	Value   any
	Err     error
}

// RecordingDelegate is a bindings.Delegate that remembers every callback.
type RecordingDelegate struct {
	Events []Event
}

func (r *RecordingDelegate) record(kind string, ctx *bindings.Context, value any, err error) {
	r.Events = append(r.Events, Event{Kind: kind, Context: ctx, Value: value, Err: err})
}

// CheckSucceeded implements bindings.Delegate.
func (r *RecordingDelegate) CheckSucceeded(ctx *bindings.Context, value any) {
	r.record("check-ok", ctx, value, nil)
}

// CheckFailed implements bindings.Delegate.
func (r *RecordingDelegate) CheckFailed(ctx *bindings.Context, value any, err error) {
	r.record("check-failed", ctx, value, err)
}

// CommitSucceeded implements bindings.Delegate.
func (r *RecordingDelegate) CommitSucceeded(ctx *bindings.Context, value any) {
	r.record("commit-ok", ctx, value, nil)
}

// CommitFailed implements bindings.Delegate.
func (r *RecordingDelegate) CommitFailed(ctx *bindings.Context, value any, err error) {
	r.record("commit-failed", ctx, value, err)
}

// Kinds returns the kind of every recorded event, in order.
func (r *RecordingDelegate) Kinds() []string {
	kinds := make([]string, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// RecordingHandler is an errors.ErrorHandler that keeps what it receives.
type RecordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.BindingError
	panics []*errors.PanicError
}

// HandleError implements errors.ErrorHandler.
func (h *RecordingHandler) HandleError(err *errors.BindingError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (h *RecordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

// Errors returns the reported errors.
func (h *RecordingHandler) Errors() []*errors.BindingError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.BindingError(nil), h.errs...)
}

// Panics returns the reported panics.
func (h *RecordingHandler) Panics() []*errors.PanicError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*errors.PanicError(nil), h.panics...)
}

// Kinds returns the kind of every reported error, in order.
func (h *RecordingHandler) Kinds() []errors.ErrorKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	kinds := make([]errors.ErrorKind, len(h.errs))
	for i, e := range h.errs {
		kinds[i] = e.Kind
	}
	return kinds
}
