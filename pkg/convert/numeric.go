package convert

import (
	"math"
	"reflect"
)

// Float converts numeric model values to a float64 native value, as shown by
// slider-like and stepper-like controls.
//
// When Min < Max, native values outside [Min, Max] are rejected. When
// Resolution > 0, native values are snapped to the nearest multiple of
// Resolution above Min before being written back.
type Float struct {
	Min        float64
	Max        float64
	Resolution float64
}

// NativeType implements Converter.
func (Float) NativeType() reflect.Type { return float64Type }

// Supports implements Converter.
func (Float) Supports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	return isNumericKind(t.Kind()) || isAny(t)
}

// ToNative implements Converter.
func (c Float) ToNative(model any, _ Format) (any, error) {
	f, ok := toFloat(reflect.ValueOf(model))
	if !ok {
		return nil, mismatch(model, "float64")
	}
	if !c.inRange(f) {
		return nil, outOfRange(model, "float64")
	}
	return f, nil
}

// FromNative implements Converter.
func (c Float) FromNative(native any, modelType reflect.Type) (any, error) {
	f, ok := toFloat(reflect.ValueOf(native))
	if !ok {
		return nil, mismatch(native, typeName(modelType))
	}
	if math.IsNaN(f) || !c.inRange(f) {
		return nil, outOfRange(native, typeName(modelType))
	}
	f = c.snap(f)
	if isAny(modelType) {
		return f, nil
	}
	v, err := fromFloat(f, modelType)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (c Float) inRange(f float64) bool {
	if c.Min >= c.Max {
		return true
	}
	return f >= c.Min && f <= c.Max
}

func (c Float) snap(f float64) float64 {
	if c.Resolution <= 0 {
		return f
	}
	steps := math.Round((f - c.Min) / c.Resolution)
	snapped := c.Min + steps*c.Resolution
	// Values already on the grid are kept bit-exact.
	if math.Abs(snapped-f) <= c.Resolution*1e-9 {
		return f
	}
	if c.Min < c.Max {
		snapped = min(max(snapped, c.Min), c.Max)
	}
	return snapped
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// toFloat reads any numeric value as float64.
func toFloat(v reflect.Value) (float64, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return 0, false
	}
	switch {
	case isIntKind(v.Kind()):
		return float64(v.Int()), true
	case isUintKind(v.Kind()):
		return float64(v.Uint()), true
	case v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

// fromFloat converts f to a value of numeric type t. Integers are rounded
// half away from zero; values that overflow t are out of range.
func fromFloat(f float64, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch {
	case isIntKind(t.Kind()):
		r := math.Round(f)
		if r < math.MinInt64 || r >= math.MaxInt64 || out.OverflowInt(int64(r)) {
			return reflect.Value{}, outOfRange(f, t.String())
		}
		out.SetInt(int64(r))
	case isUintKind(t.Kind()):
		r := math.Round(f)
		if r < 0 || r >= math.MaxUint64 || out.OverflowUint(uint64(r)) {
			return reflect.Value{}, outOfRange(f, t.String())
		}
		out.SetUint(uint64(r))
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		if out.OverflowFloat(f) {
			return reflect.Value{}, outOfRange(f, t.String())
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, mismatch(f, t.String())
	}
	return out, nil
}
