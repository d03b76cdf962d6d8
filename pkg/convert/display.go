package convert

import (
	"fmt"
	"reflect"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display renders any model value as read-only text for label-like controls.
//
// Numbers use locale-aware grouping and decimal separators when the format
// carries a locale. Display is one-way: FromNative always fails.
type Display struct{}

// NativeType implements Converter.
func (Display) NativeType() reflect.Type { return stringType }

// Supports implements Converter.
func (Display) Supports(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false
	}
	return true
}

// ToNative implements Converter.
func (Display) ToNative(model any, f Format) (any, error) {
	return FormatDisplay(model, f) + f.Unit, nil
}

// FromNative implements Converter.
func (Display) FromNative(native any, modelType reflect.Type) (any, error) {
	return nil, mismatch(native, typeName(modelType))
}

// FormatDisplay renders model for display using f, without the unit suffix.
func FormatDisplay(model any, f Format) string {
	if model == nil {
		return ""
	}
	switch m := model.(type) {
	case fmt.Stringer:
		return m.String()
	case error:
		return m.Error()
	}
	v := indirect(reflect.ValueOf(model))
	if !v.IsValid() {
		return ""
	}
	if f.HasLocale() {
		if n, ok := toFloat(v); ok {
			return formatLocalized(n, v.Kind(), f)
		}
	}
	if s, ok := formatPlain(v, f.Precision); ok {
		return s
	}
	return fmt.Sprint(v.Interface())
}

func formatLocalized(n float64, k reflect.Kind, f Format) string {
	p := message.NewPrinter(f.Locale)
	var opts []number.Option
	switch {
	case f.Precision >= 0:
		opts = append(opts, number.Scale(f.Precision))
	case isIntKind(k) || isUintKind(k):
		opts = append(opts, number.Scale(0))
	}
	return p.Sprint(number.Decimal(n, opts...))
}
