// Package errors provides structured error handling for the binding engine.
//
// Every failure the engine surfaces or reports is wrapped in a [BindingError]
// that carries the failing operation, a [ErrorKind], the bound key path and the
// binding context identifier. The typed causes (malformed key paths,
// unresolvable paths, conversion failures, validation rejections) stay
// reachable through Unwrap, so callers use the standard library's errors.As
// and errors.Is on them.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindMalformedKeyPath indicates a syntactically invalid key path expression.
	KindMalformedKeyPath
	// KindUnresolvable indicates a key path that does not lead to a property.
	KindUnresolvable
	// KindConversion indicates a model/native value conversion failure.
	KindConversion
	// KindSetup indicates a binding that could not be attached.
	KindSetup
	// KindValidation indicates a value rejected by the check step.
	KindValidation
	// KindInvalidState indicates an operation on a torn-down binding.
	KindInvalidState
	// KindPanic indicates a recovered panic in caller-supplied code.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedKeyPath:
		return "malformed-keypath"
	case KindUnresolvable:
		return "unresolvable"
	case KindConversion:
		return "conversion"
	case KindSetup:
		return "setup"
	case KindValidation:
		return "validation"
	case KindInvalidState:
		return "invalid-state"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindingError represents a structured error raised by the binding engine.
type BindingError struct {
	// Op is the operation that failed (e.g., "bindings.Attach").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// KeyPath is the bound key path, if applicable.
	KeyPath string
	// Context is the binding context identifier, if applicable.
	Context string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindingError) Error() string {
	if e.KeyPath != "" {
		return fmt.Sprintf("%s [%s] keyPath=%s: %v", e.Op, e.Kind, e.KeyPath, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// New returns a BindingError stamped with the current time.
func New(op string, kind ErrorKind, keyPath string, err error) *BindingError {
	return &BindingError{
		Op:        op,
		Kind:      kind,
		KeyPath:   keyPath,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// IsKind reports whether any BindingError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var be *BindingError
		if !stderrors.As(err, &be) {
			return false
		}
		if be.Kind == kind {
			return true
		}
		err = be.Err
	}
	return false
}

// KindOf returns the kind of the outermost BindingError in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var be *BindingError
	if stderrors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// PanicError represents a panic recovered from caller-supplied code such as
// validators and delegates.
type PanicError struct {
	// Op is the operation that panicked (e.g., "bindings.check").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the binding engine.
type ErrorHandler interface {
	// HandleError is called for errors that cannot be returned to a caller,
	// such as failures while reacting to a model change notification.
	HandleError(err *BindingError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
