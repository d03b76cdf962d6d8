package bindings

import (
	"fmt"
)

// Validator checks a proposed value before it is written to the model.
// A nil error accepts the value; any other error rejects it and becomes the
// rejection reason.
type Validator interface {
	Check(proposed any, keyPath string) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(proposed any, keyPath string) error

// Check implements Validator.
func (f ValidatorFunc) Check(proposed any, keyPath string) error {
	return f(proposed, keyPath)
}

// Validators dispatches to a validator registered for each key path.
// Key paths without a validator accept every value.
type Validators map[string]Validator

// Check implements Validator.
func (v Validators) Check(proposed any, keyPath string) error {
	if check, ok := v[keyPath]; ok && check != nil {
		return check.Check(proposed, keyPath)
	}
	return nil
}

// ValidationRejected reports a value refused by the check step.
type ValidationRejected struct {
	KeyPath string
	Value   any
	Reason  error
}

func (e *ValidationRejected) Error() string {
	return fmt.Sprintf("value %v rejected for %s: %v", e.Value, e.KeyPath, e.Reason)
}

func (e *ValidationRejected) Unwrap() error {
	return e.Reason
}

// Delegate is told about the outcome of each check and commit.
//
// Methods are called on the UI thread, inside the cycle they describe.
type Delegate interface {
	CheckSucceeded(ctx *Context, value any)
	CheckFailed(ctx *Context, value any, err error)
	CommitSucceeded(ctx *Context, value any)
	CommitFailed(ctx *Context, value any, err error)
}

// DelegateFuncs implements Delegate with optional callbacks.
type DelegateFuncs struct {
	OnCheckSucceeded  func(ctx *Context, value any)
	OnCheckFailed     func(ctx *Context, value any, err error)
	OnCommitSucceeded func(ctx *Context, value any)
	OnCommitFailed    func(ctx *Context, value any, err error)
}

// CheckSucceeded implements Delegate.
func (d DelegateFuncs) CheckSucceeded(ctx *Context, value any) {
	if d.OnCheckSucceeded != nil {
		d.OnCheckSucceeded(ctx, value)
	}
}

// CheckFailed implements Delegate.
func (d DelegateFuncs) CheckFailed(ctx *Context, value any, err error) {
	if d.OnCheckFailed != nil {
		d.OnCheckFailed(ctx, value, err)
	}
}

// CommitSucceeded implements Delegate.
func (d DelegateFuncs) CommitSucceeded(ctx *Context, value any) {
	if d.OnCommitSucceeded != nil {
		d.OnCommitSucceeded(ctx, value)
	}
}

// CommitFailed implements Delegate.
func (d DelegateFuncs) CommitFailed(ctx *Context, value any, err error) {
	if d.OnCommitFailed != nil {
		d.OnCommitFailed(ctx, value, err)
	}
}
