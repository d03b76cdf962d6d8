package bindings

import (
	stderrors "errors"

	"github.com/go-drift/viewbind/pkg/convert"
	"github.com/go-drift/viewbind/pkg/errors"
	"github.com/go-drift/viewbind/pkg/keypath"
	"github.com/go-drift/viewbind/pkg/observe"
)

// Context is one live binding between a control and a model property.
//
// Contexts are created by Coordinator.Attach and owned by their
// coordinator. All methods must be called from the UI thread. Events that
// arrive while a cycle is running are queued and processed in arrival
// order once it finishes, so nothing runs concurrently within a context.
type Context struct {
	id      string
	coord   *Coordinator
	control Adapter
	desc    *Descriptor
	format  convert.Format
	res     keypath.Resolution

	state   State
	guard   guard
	busy    bool
	pending []func()
	cancels []func()

	lastNative any
	lastErr    error
}

// ID returns the context's unique identifier.
func (c *Context) ID() string { return c.id }

// State returns the current lifecycle state.
func (c *Context) State() State { return c.state }

// Descriptor returns the descriptor the context was attached with.
func (c *Context) Descriptor() *Descriptor { return c.desc }

// Control returns the bound control.
func (c *Context) Control() Adapter { return c.control }

// Root returns the root model object.
func (c *Context) Root() any { return c.res.Root() }

// KeyPath returns the bound key path in canonical form.
func (c *Context) KeyPath() string { return c.desc.KeyPath().String() }

// LastError returns the most recent failure recorded by the context, or nil
// after a successful commit.
func (c *Context) LastError() error { return c.lastErr }

// Refresh re-reads the model and displays its value. An unresolvable path
// or a conversion failure is returned; the control is left unchanged.
func (c *Context) Refresh(animated bool) error {
	const op = "bindings.Refresh"
	if c.state == TornDown {
		return c.invalidState(op)
	}
	if c.busy {
		return c.inProgress(op)
	}
	var err error
	c.run(func() { err = c.refresh(op, animated) })
	return err
}

// Check validates the value the control currently displays without
// writing it. A rejection is returned as a BindingError wrapping
// *ValidationRejected; the control is not reverted.
func (c *Context) Check() error {
	const op = "bindings.Check"
	if c.state == TornDown {
		return c.invalidState(op)
	}
	if c.busy {
		return c.inProgress(op)
	}
	var err error
	c.run(func() { err = c.checkDisplayed(op) })
	return err
}

// Commit runs the check/commit cycle for the displayed value as if the user
// had just edited it. Nothing is written while the control is disabled.
func (c *Context) Commit() error {
	const op = "bindings.Commit"
	if c.state == TornDown {
		return c.invalidState(op)
	}
	if c.busy {
		return c.inProgress(op)
	}
	if !c.control.Enabled() {
		return nil
	}
	var err error
	c.run(func() { err = c.cycle(op) })
	return err
}

// Detach tears the context down. It is shorthand for
// c.Coordinator().Detach(c).
func (c *Context) Detach() error {
	return c.coord.Detach(c)
}

// Coordinator returns the coordinator that owns the context.
func (c *Context) Coordinator() *Coordinator { return c.coord }

// run executes fn now, or queues it behind the cycle in progress. Queued
// events are drained in arrival order before the outermost run returns.
func (c *Context) run(fn func()) {
	if c.busy {
		c.pending = append(c.pending, fn)
		return
	}
	c.busy = true
	defer func() { c.busy = false }()

	fn()
	for len(c.pending) > 0 && c.state != TornDown {
		next := c.pending[0]
		c.pending = c.pending[1:]
		next()
	}
	if c.state == TornDown {
		c.pending = nil
	}
}

func (c *Context) modelChanged(observe.Change) {
	if c.state == TornDown || c.guard == applyingCommit {
		return
	}
	c.run(func() {
		if c.state == TornDown {
			return
		}
		c.coord.report(c.refresh("bindings.modelChanged", c.desc.Animated()))
	})
}

func (c *Context) userEdited() {
	if c.state == TornDown || c.guard == applyingDisplay {
		return
	}
	if !c.control.Enabled() {
		return
	}
	c.run(func() {
		if c.state == TornDown {
			return
		}
		if err := c.cycle("bindings.userEdited"); !stderrors.Is(err, ErrAborted) {
			c.coord.report(err)
		}
	})
}

func (c *Context) refresh(op string, animated bool) error {
	value, err := c.res.Read()
	if err != nil {
		return c.fail(op, errors.KindUnresolvable, err)
	}
	native, err := c.control.Converter().ToNative(value, c.format)
	if err != nil {
		return c.fail(op, errors.KindConversion, err)
	}
	c.display(native, animated)
	return nil
}

func (c *Context) display(native any, animated bool) {
	c.guard = applyingDisplay
	defer func() { c.guard = idle }()
	c.control.DisplayValue(native, animated)
	c.lastNative = native
}

// revert shows the model's value again, falling back to the last value
// displayed when the model can no longer be read.
func (c *Context) revert() {
	if value, err := c.res.Read(); err == nil {
		if native, err := c.control.Converter().ToNative(value, c.format); err == nil {
			c.display(native, c.desc.Animated())
			return
		}
	}
	if c.lastNative != nil {
		c.display(c.lastNative, c.desc.Animated())
	}
}

// proposed converts what the control shows into a model value.
func (c *Context) proposed(op string) (native, value any, err error) {
	native = c.control.CurrentNativeValue()
	typ, err := c.res.Type()
	if err != nil {
		return native, nil, c.fail(op, errors.KindUnresolvable, err)
	}
	value, err = c.control.Converter().FromNative(native, typ)
	if err != nil {
		return native, nil, c.fail(op, errors.KindConversion, err)
	}
	return native, value, nil
}

func (c *Context) cycle(op string) error {
	native, value, err := c.proposed(op)
	if err != nil {
		if errors.KindOf(err) == errors.KindUnresolvable {
			return err
		}
		return c.reject(native, err)
	}

	if c.desc.CheckedOnInput() {
		c.state = Checking
		err := c.validate(value)
		if c.state == TornDown {
			return c.aborted(op)
		}
		if err != nil {
			return c.reject(value, c.fail(op, kindOfRejection(err), err))
		}
		if err := c.tell("bindings.CheckSucceeded", func(d Delegate) { d.CheckSucceeded(c, value) }); err != nil {
			if c.state == TornDown {
				return c.aborted(op)
			}
			return c.reject(value, c.fail(op, errors.KindPanic, err))
		}
		if c.state == TornDown {
			return c.aborted(op)
		}
	}

	return c.commit(op, value)
}

func (c *Context) commit(op string, value any) error {
	c.state = Committing
	err := c.write(value)
	if c.state == TornDown {
		return nil
	}
	if err != nil {
		be := c.fail(op, kindOfWrite(err), err)
		c.state = Rejecting
		c.revert()
		if c.state == Rejecting {
			c.state = Bound
		}
		_ = c.tell("bindings.CommitFailed", func(d Delegate) { d.CommitFailed(c, value, err) })
		return be
	}
	c.state = Bound
	c.lastNative = c.control.CurrentNativeValue()
	c.lastErr = nil
	_ = c.tell("bindings.CommitSucceeded", func(d Delegate) { d.CommitSucceeded(c, value) })
	return nil
}

// write stores value and posts the change. Notifications delivered to this
// context while the guard is up are its own and are dropped.
func (c *Context) write(value any) error {
	c.guard = applyingCommit
	defer func() { c.guard = idle }()
	if err := c.res.Write(value); err != nil {
		return err
	}
	if n := c.coord.notifier; n != nil {
		n.Notify(c.res.Root(), c.desc.KeyPath(), c)
	}
	return nil
}

// reject reverts the control after a refused value. err is the BindingError
// built by fail; the delegate receives its cause.
func (c *Context) reject(value any, err error) error {
	c.state = Rejecting
	c.revert()
	if c.state == Rejecting {
		c.state = Bound
	}
	cause := err
	if be, ok := err.(*errors.BindingError); ok {
		cause = be.Err
	}
	_ = c.tell("bindings.CheckFailed", func(d Delegate) { d.CheckFailed(c, value, cause) })
	return err
}

func (c *Context) checkDisplayed(op string) error {
	_, value, err := c.proposed(op)
	if err != nil {
		return err
	}
	c.state = Checking
	verr := c.validate(value)
	if c.state == TornDown {
		return c.aborted(op)
	}
	c.state = Bound
	if verr != nil {
		be := c.fail(op, kindOfRejection(verr), verr)
		_ = c.tell("bindings.CheckFailed", func(d Delegate) { d.CheckFailed(c, value, verr) })
		return be
	}
	_ = c.tell("bindings.CheckSucceeded", func(d Delegate) { d.CheckSucceeded(c, value) })
	return nil
}

// validate runs the coordinator's validator. A panic counts as rejection.
func (c *Context) validate(value any) error {
	v := c.coord.validator
	if v == nil {
		return nil
	}
	kp := c.KeyPath()
	err := errors.Guard(c.coord.handler, "bindings.check", func() error {
		return v.Check(value, kp)
	})
	if err == nil {
		return nil
	}
	return &ValidationRejected{KeyPath: kp, Value: value, Reason: err}
}

func (c *Context) tell(op string, fn func(Delegate)) error {
	d := c.coord.delegate
	if d == nil {
		return nil
	}
	return errors.Guard(c.coord.handler, op, func() error {
		fn(d)
		return nil
	})
}

func (c *Context) fail(op string, kind errors.ErrorKind, err error) *errors.BindingError {
	be := errors.New(op, kind, c.KeyPath(), err)
	be.Context = c.id
	c.lastErr = be
	return be
}

func (c *Context) invalidState(op string) error {
	be := errors.New(op, errors.KindInvalidState, c.KeyPath(), ErrInvalidState)
	be.Context = c.id
	return be
}

func (c *Context) inProgress(op string) error {
	be := errors.New(op, errors.KindInvalidState, c.KeyPath(), ErrCycleInProgress)
	be.Context = c.id
	return be
}

func (c *Context) aborted(op string) error {
	be := errors.New(op, errors.KindInvalidState, c.KeyPath(), ErrAborted)
	be.Context = c.id
	return be
}

func (c *Context) teardown() {
	for i := len(c.cancels) - 1; i >= 0; i-- {
		c.cancels[i]()
	}
	c.cancels = nil
	c.pending = nil
	c.state = TornDown
}

func kindOfRejection(err error) errors.ErrorKind {
	var pe *errors.PanicError
	if stderrors.As(err, &pe) {
		return errors.KindPanic
	}
	return errors.KindValidation
}

func kindOfWrite(err error) errors.ErrorKind {
	var ue *keypath.UnresolvablePathError
	if stderrors.As(err, &ue) {
		return errors.KindUnresolvable
	}
	var ce *convert.ConversionError
	if stderrors.As(err, &ce) {
		return errors.KindConversion
	}
	return errors.KindUnknown
}
