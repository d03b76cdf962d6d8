package convert

import (
	"encoding"
	stderrors "errors"
	"reflect"
	"strconv"
	"strings"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Text converts string, numeric, boolean and text-marshalable model values
// to the string a text-entry control edits.
type Text struct{}

// NativeType implements Converter.
func (Text) NativeType() reflect.Type { return stringType }

// Supports implements Converter.
func (Text) Supports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if isAny(t) || isTextCodec(t) {
		return true
	}
	k := t.Kind()
	return k == reflect.String || k == reflect.Bool || isNumericKind(k)
}

func isTextCodec(t reflect.Type) bool {
	return t.Implements(textMarshalerType) && reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// ToNative implements Converter.
func (Text) ToNative(model any, f Format) (any, error) {
	if model == nil {
		return "", nil
	}
	if m, ok := model.(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		if err != nil {
			return nil, &ConversionError{Reason: TypeMismatch, Value: model, Target: "string", Err: err}
		}
		return string(b), nil
	}
	v := indirect(reflect.ValueOf(model))
	if !v.IsValid() {
		return "", nil
	}
	s, ok := formatPlain(v, f.Precision)
	if !ok {
		return nil, mismatch(model, "string")
	}
	return s, nil
}

// FromNative implements Converter.
func (Text) FromNative(native any, modelType reflect.Type) (any, error) {
	s, ok := native.(string)
	if !ok {
		return nil, mismatch(native, typeName(modelType))
	}
	if modelType == nil {
		return nil, mismatch(native, "<nil>")
	}
	if isAny(modelType) {
		return s, nil
	}
	if isTextCodec(modelType) {
		ptr := reflect.New(modelType)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, &ConversionError{Reason: Unparsable, Value: s, Target: modelType.String(), Err: err}
		}
		return ptr.Elem().Interface(), nil
	}

	out := reflect.New(modelType).Elem()
	trimmed := strings.TrimSpace(s)
	k := modelType.Kind()
	switch {
	case k == reflect.String:
		out.SetString(s)
	case k == reflect.Bool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, parseFailure(s, modelType, err)
		}
		out.SetBool(b)
	case isIntKind(k):
		n, err := strconv.ParseInt(trimmed, 10, modelType.Bits())
		if err != nil {
			return nil, parseFailure(s, modelType, err)
		}
		out.SetInt(n)
	case isUintKind(k):
		n, err := strconv.ParseUint(trimmed, 10, modelType.Bits())
		if err != nil {
			return nil, parseFailure(s, modelType, err)
		}
		out.SetUint(n)
	case k == reflect.Float32 || k == reflect.Float64:
		n, err := strconv.ParseFloat(trimmed, modelType.Bits())
		if err != nil {
			return nil, parseFailure(s, modelType, err)
		}
		out.SetFloat(n)
	default:
		return nil, mismatch(native, modelType.String())
	}
	return out.Interface(), nil
}

func parseFailure(s string, t reflect.Type, err error) error {
	reason := Unparsable
	if stderrors.Is(err, strconv.ErrRange) {
		reason = OutOfRange
	}
	return &ConversionError{Reason: reason, Value: s, Target: t.String(), Err: err}
}

// formatPlain renders scalar values without locale rules.
func formatPlain(v reflect.Value, precision int) (string, bool) {
	k := v.Kind()
	switch {
	case k == reflect.String:
		return v.String(), true
	case k == reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case isIntKind(k):
		return strconv.FormatInt(v.Int(), 10), true
	case isUintKind(k):
		return strconv.FormatUint(v.Uint(), 10), true
	case k == reflect.Float32 || k == reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', precision, v.Type().Bits()), true
	}
	return "", false
}
