// Package bindings connects controls to model properties.
//
// A [Descriptor] declares which property a control shows and how. A
// [Coordinator] turns descriptor, control and model into a live [Context]
// that keeps them in sync in both directions: model changes are displayed,
// user edits are checked and written back, and a rejected edit reverts the
// control to the model's value.
//
// Controls participate through the [Adapter] interface; the controls package
// provides implementations for common control kinds. Model changes arrive
// through an injected [ChangeSource], normally an *observe.Center.
//
// # Threading
//
// Coordinators and contexts are not safe for concurrent use. Like widget
// state, they belong to the UI thread.
package bindings

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/go-drift/viewbind/pkg/convert"
	"github.com/go-drift/viewbind/pkg/errors"
	"github.com/go-drift/viewbind/pkg/keypath"
	"github.com/go-drift/viewbind/pkg/observe"
)

// ChangeSource delivers model change notifications.
type ChangeSource interface {
	// Subscribe registers fn for changes under root that overlap p.
	Subscribe(root any, p keypath.Path, fn func(observe.Change)) (cancel func())
}

// Notifier is implemented by change sources that accept posts. When the
// coordinator's source is a Notifier, every commit is posted to it with the
// committing Context as origin.
type Notifier interface {
	Notify(root any, p keypath.Path, origin any)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithValidator sets the validator consulted before checked commits.
// Without one, every value is accepted.
func WithValidator(v Validator) Option {
	return func(co *Coordinator) { co.validator = v }
}

// WithDelegate sets the delegate told about check and commit outcomes.
func WithDelegate(d Delegate) Option {
	return func(co *Coordinator) { co.delegate = d }
}

// WithErrorHandler sets where background failures are reported. Without
// one, errors.Handler() is used.
func WithErrorHandler(h errors.ErrorHandler) Option {
	return func(co *Coordinator) { co.handler = h }
}

// WithLocale sets the locale applied to descriptors whose format does not
// name one.
func WithLocale(tag language.Tag) Option {
	return func(co *Coordinator) { co.locale = tag }
}

type bindingKey struct {
	control Adapter
	keyPath string
}

// Coordinator creates, tracks and tears down binding contexts.
type Coordinator struct {
	source    ChangeSource
	notifier  Notifier
	validator Validator
	delegate  Delegate
	handler   errors.ErrorHandler
	locale    language.Tag

	contexts []*Context
	index    map[bindingKey]*Context
}

// NewCoordinator returns a coordinator that listens to source. A nil source
// is allowed; contexts then only update on Refresh.
func NewCoordinator(source ChangeSource, opts ...Option) *Coordinator {
	co := &Coordinator{
		source: source,
		index:  make(map[bindingKey]*Context),
	}
	if n, ok := source.(Notifier); ok {
		co.notifier = n
	}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

var errNilArgument = stderrors.New("control and descriptor must not be nil")

// Attach binds control to the property d names under root and displays its
// current value without animation.
//
// Every failure is a *errors.BindingError of kind KindSetup wrapping the
// cause: *keypath.UnresolvablePathError, *convert.ConversionError,
// ErrIncompatibleType or ErrAlreadyBound. On failure no subscription is
// left behind and the control is untouched.
func (co *Coordinator) Attach(control Adapter, d *Descriptor, root any) (*Context, error) {
	const op = "bindings.Attach"
	if control == nil || d == nil {
		return nil, errors.New(op, errors.KindSetup, "", errNilArgument)
	}
	kp := d.KeyPath().String()
	if !reflect.TypeOf(control).Comparable() {
		return nil, errors.New(op, errors.KindSetup, kp, fmt.Errorf("control type %T is not comparable", control))
	}
	key := bindingKey{control: control, keyPath: kp}
	if _, ok := co.index[key]; ok {
		return nil, errors.New(op, errors.KindSetup, kp, ErrAlreadyBound)
	}

	res, err := keypath.Resolve(root, d.KeyPath())
	if err != nil {
		return nil, errors.New(op, errors.KindSetup, kp, err)
	}
	typ, err := res.Type()
	if err != nil {
		return nil, errors.New(op, errors.KindSetup, kp, err)
	}
	conv := control.Converter()
	if conv == nil || !control.SupportsModelType(typ) || !conv.Supports(typ) {
		return nil, errors.New(op, errors.KindSetup, kp, fmt.Errorf("%w: %T cannot show %s", ErrIncompatibleType, control, typ))
	}
	value, err := res.Read()
	if err != nil {
		return nil, errors.New(op, errors.KindSetup, kp, err)
	}
	format := co.formatFor(d)
	native, err := conv.ToNative(value, format)
	if err != nil {
		return nil, errors.New(op, errors.KindSetup, kp, err)
	}

	c := &Context{
		id:      uuid.NewString(),
		coord:   co,
		control: control,
		desc:    d,
		format:  format,
		res:     res,
		state:   Unbound,
	}
	if co.source != nil {
		c.cancels = append(c.cancels, co.source.Subscribe(root, d.KeyPath(), c.modelChanged))
	}
	c.cancels = append(c.cancels, control.ObserveUserEdits(c.userEdited))
	if disposer, ok := control.(Disposer); ok {
		c.cancels = append(c.cancels, disposer.OnDispose(func() {
			if c.state != TornDown {
				_ = co.Detach(c)
			}
		}))
	}

	c.display(native, false)
	c.state = Bound
	co.index[key] = c
	co.contexts = append(co.contexts, c)
	return c, nil
}

// Detach tears c down: its subscription and edit observer are cancelled and
// no further display or write happens. A cycle in progress is abandoned
// before it commits. Detaching a torn-down context returns a BindingError of
// kind KindInvalidState wrapping ErrInvalidState.
func (co *Coordinator) Detach(c *Context) error {
	if c == nil {
		return errors.New("bindings.Detach", errors.KindInvalidState, "", ErrInvalidState)
	}
	if c.state == TornDown || c.coord != co {
		return c.invalidState("bindings.Detach")
	}
	c.teardown()
	delete(co.index, bindingKey{control: c.control, keyPath: c.KeyPath()})
	co.contexts = slices.DeleteFunc(co.contexts, func(x *Context) bool { return x == c })
	return nil
}

// Lookup returns the live context binding control to keyPath.
func (co *Coordinator) Lookup(control Adapter, keyPath string) (*Context, bool) {
	if control == nil || !reflect.TypeOf(control).Comparable() {
		return nil, false
	}
	c, ok := co.index[bindingKey{control: control, keyPath: keyPath}]
	return c, ok
}

// Contexts returns the live contexts in attach order.
func (co *Coordinator) Contexts() []*Context {
	return slices.Clone(co.contexts)
}

// BindTree attaches every identified control under root that has an entry
// in sheet. Binding is all or nothing: if one attach fails, the contexts
// created so far are detached and the error is returned.
func (co *Coordinator) BindTree(root Node, sheet Sheet, model any) ([]*Context, error) {
	var (
		attached []*Context
		firstErr error
	)
	Walk(root, func(n Node) {
		if firstErr != nil {
			return
		}
		control, ok := n.(Adapter)
		if !ok {
			return
		}
		ident, ok := n.(Identified)
		if !ok {
			return
		}
		d, ok := sheet.Lookup(ident.ID())
		if !ok {
			return
		}
		c, err := co.Attach(control, d, model)
		if err != nil {
			firstErr = fmt.Errorf("bind %q: %w", ident.ID(), err)
			return
		}
		attached = append(attached, c)
	})
	if firstErr != nil {
		for _, c := range attached {
			_ = co.Detach(c)
		}
		return nil, firstErr
	}
	return attached, nil
}

// UnbindTree detaches every context whose control is root or one of its
// descendants.
func (co *Coordinator) UnbindTree(root Node) {
	nodes := make(map[any]struct{})
	Walk(root, func(n Node) {
		if reflect.TypeOf(n).Comparable() {
			nodes[n] = struct{}{}
		}
	})
	for _, c := range co.Contexts() {
		if _, ok := nodes[c.control]; ok {
			_ = co.Detach(c)
		}
	}
}

// CheckAll checks the displayed value of every live context and joins the
// failures.
func (co *Coordinator) CheckAll() error {
	var errs []error
	for _, c := range co.Contexts() {
		if c.state == TornDown {
			continue
		}
		if err := c.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// CommitAll commits the displayed value of every live context and joins the
// failures.
func (co *Coordinator) CommitAll() error {
	var errs []error
	for _, c := range co.Contexts() {
		if c.state == TornDown {
			continue
		}
		if err := c.Commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// RefreshAll redisplays the model value of every live context.
func (co *Coordinator) RefreshAll(animated bool) error {
	var errs []error
	for _, c := range co.Contexts() {
		if c.state == TornDown {
			continue
		}
		if err := c.Refresh(animated); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Close detaches every context.
func (co *Coordinator) Close() {
	for _, c := range co.Contexts() {
		if c.state != TornDown {
			_ = co.Detach(c)
		}
	}
}

func (co *Coordinator) formatFor(d *Descriptor) convert.Format {
	f := d.Format()
	if !f.HasLocale() && co.locale != language.Und {
		f.Locale = co.locale
	}
	return f
}

func (co *Coordinator) report(err error) {
	if err == nil {
		return
	}
	var be *errors.BindingError
	if stderrors.As(err, &be) {
		errors.ReportTo(co.handler, be)
	}
}
