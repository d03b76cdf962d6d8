// Package convert translates values between a model-side Go type and the
// native representation a control displays.
//
// A [Converter] is a pure function pair. ToNative renders a model value for
// a control; FromNative turns what the control currently shows back into a
// value of the model's type. For every converter except [Display], values the
// control can represent round-trip:
//
//	native, _ := c.ToNative(v, f)
//	back, _ := c.FromNative(native, reflect.TypeOf(v))
//	// back == v
//
// Failures are always *ConversionError, classified by [Reason].
package convert

import (
	"fmt"
	"reflect"
)

// Converter translates between model values and a control's native values.
type Converter interface {
	// NativeType is the Go type of the control-side values.
	NativeType() reflect.Type
	// Supports reports whether model values of type t can be converted.
	Supports(t reflect.Type) bool
	// ToNative converts a model value to the native representation.
	ToNative(model any, f Format) (any, error)
	// FromNative converts a native value to a value of modelType.
	FromNative(native any, modelType reflect.Type) (any, error)
}

// Reason classifies a conversion failure.
type Reason int

const (
	// TypeMismatch means the value's type cannot be converted at all.
	TypeMismatch Reason = iota
	// OutOfRange means the value is of a usable type but outside what the
	// target can represent.
	OutOfRange
	// Unparsable means a textual value could not be parsed.
	Unparsable
)

func (r Reason) String() string {
	switch r {
	case TypeMismatch:
		return "type mismatch"
	case OutOfRange:
		return "out of range"
	case Unparsable:
		return "unparsable"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// ConversionError reports a failed conversion.
type ConversionError struct {
	// Reason classifies the failure.
	Reason Reason
	// Value is the value that could not be converted.
	Value any
	// Target names the type or representation conversion was attempting.
	Target string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v (%T) to %s: %s", e.Value, e.Value, e.Target, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func mismatch(v any, target string) error {
	return &ConversionError{Reason: TypeMismatch, Value: v, Target: target}
}

func outOfRange(v any, target string) error {
	return &ConversionError{Reason: OutOfRange, Value: v, Target: target}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

var (
	float64Type = reflect.TypeFor[float64]()
	stringType  = reflect.TypeFor[string]()
	boolType    = reflect.TypeFor[bool]()
	intType     = reflect.TypeFor[int]()
)

// isAny reports whether t is an empty interface, which accepts the native
// value's natural Go type.
func isAny(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// indirect unwraps pointers and interfaces, returning an invalid Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
