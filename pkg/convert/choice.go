package convert

import (
	"reflect"
	"slices"
)

// Bool converts boolean model values for toggle-like controls.
type Bool struct{}

// NativeType implements Converter.
func (Bool) NativeType() reflect.Type { return boolType }

// Supports implements Converter.
func (Bool) Supports(t reflect.Type) bool {
	return t != nil && (t.Kind() == reflect.Bool || isAny(t))
}

// ToNative implements Converter.
func (Bool) ToNative(model any, _ Format) (any, error) {
	v := indirect(reflect.ValueOf(model))
	if !v.IsValid() || v.Kind() != reflect.Bool {
		return nil, mismatch(model, "bool")
	}
	return v.Bool(), nil
}

// FromNative implements Converter.
func (Bool) FromNative(native any, modelType reflect.Type) (any, error) {
	b, ok := native.(bool)
	if !ok {
		return nil, mismatch(native, typeName(modelType))
	}
	if isAny(modelType) {
		return b, nil
	}
	if modelType == nil || modelType.Kind() != reflect.Bool {
		return nil, mismatch(native, typeName(modelType))
	}
	return reflect.ValueOf(b).Convert(modelType).Interface(), nil
}

// Choice converts between a model value naming one of Options and the
// option's index, as shown by segmented controls and pickers.
//
// String model values are matched against Options by name. Integer model
// values are used as the index directly.
type Choice struct {
	Options []string
}

// NativeType implements Converter.
func (Choice) NativeType() reflect.Type { return intType }

// Supports implements Converter.
func (Choice) Supports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	k := t.Kind()
	return k == reflect.String || isIntKind(k) || isUintKind(k) || isAny(t)
}

// ToNative implements Converter.
func (c Choice) ToNative(model any, _ Format) (any, error) {
	v := indirect(reflect.ValueOf(model))
	if !v.IsValid() {
		return nil, mismatch(model, "option index")
	}
	var idx int
	switch {
	case v.Kind() == reflect.String:
		idx = slices.Index(c.Options, v.String())
	case isIntKind(v.Kind()):
		idx = int(v.Int())
	case isUintKind(v.Kind()):
		if v.Uint() > uint64(len(c.Options)) {
			return nil, outOfRange(model, "option index")
		}
		idx = int(v.Uint())
	default:
		return nil, mismatch(model, "option index")
	}
	if idx < 0 || idx >= len(c.Options) {
		return nil, outOfRange(model, "option index")
	}
	return idx, nil
}

// FromNative implements Converter.
func (c Choice) FromNative(native any, modelType reflect.Type) (any, error) {
	idx, ok := native.(int)
	if !ok {
		return nil, mismatch(native, typeName(modelType))
	}
	if idx < 0 || idx >= len(c.Options) {
		return nil, outOfRange(native, typeName(modelType))
	}
	switch {
	case isAny(modelType):
		return c.Options[idx], nil
	case modelType == nil:
		return nil, mismatch(native, typeName(modelType))
	case modelType.Kind() == reflect.String:
		return reflect.ValueOf(c.Options[idx]).Convert(modelType).Interface(), nil
	case isIntKind(modelType.Kind()) || isUintKind(modelType.Kind()):
		v, err := fromFloat(float64(idx), modelType)
		if err != nil {
			return nil, err
		}
		return v.Interface(), nil
	}
	return nil, mismatch(native, typeName(modelType))
}
