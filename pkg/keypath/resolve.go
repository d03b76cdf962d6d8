package keypath

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-drift/viewbind/pkg/convert"
)

// KeyValueCoder is implemented by model objects that expose their
// properties by key instead of through struct fields.
type KeyValueCoder interface {
	// ValueForKey returns the value for key and whether the key is known.
	ValueForKey(key string) (any, bool)
	// SetValueForKey stores value under key.
	SetValueForKey(key string, value any) error
}

var kvcType = reflect.TypeFor[KeyValueCoder]()

// UnresolvablePathError reports a key path that does not lead to a property
// of the given root.
type UnresolvablePathError struct {
	// Path is the full key path being resolved.
	Path string
	// Segment is the path prefix at which resolution failed.
	Segment string
	// Reason describes the failure.
	Reason string
}

func (e *UnresolvablePathError) Error() string {
	return fmt.Sprintf("cannot resolve %q in key path %q: %s", e.Segment, e.Path, e.Reason)
}

// Resolution is the result of resolving a path against a root.
//
// A Resolution never holds the container it found. Read, Write and Type walk
// the path from the root again, so they observe intermediate objects that were
// replaced, removed or re-inserted after Resolve.
type Resolution struct {
	root any
	path Path
}

// Root returns the root the path was resolved against.
func (r Resolution) Root() any { return r.root }

// Path returns the resolved path.
func (r Resolution) Path() Path { return r.path }

// Property returns the terminal segment rendered as a property name.
func (r Resolution) Property() string { return r.path.Last().String() }

// Resolve locates the property named by p under root.
func Resolve(root any, p Path) (Resolution, error) {
	if p.IsZero() {
		return Resolution{}, &UnresolvablePathError{Reason: "empty key path"}
	}
	owner, err := walk(root, p)
	if err != nil {
		return Resolution{}, err
	}
	if _, _, err := child(owner, p, p.Len()-1, true); err != nil {
		return Resolution{}, err
	}
	return Resolution{root: root, path: p}, nil
}

// Read returns the current value of the resolved property. A terminal map
// key that is not present reads as the map's zero element.
func (r Resolution) Read() (any, error) {
	owner, err := walk(r.root, r.path)
	if err != nil {
		return nil, err
	}
	v, found, err := child(owner, r.path, r.path.Len()-1, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return reflect.Zero(v.Type()).Interface(), nil
	}
	if !v.CanInterface() {
		return nil, r.fail(r.path.Len()-1, "property is not exported")
	}
	return v.Interface(), nil
}

// Type returns the type of the resolved property. When the property is
// declared as an interface and currently holds a value, the dynamic type is
// returned.
func (r Resolution) Type() (reflect.Type, error) {
	owner, err := walk(r.root, r.path)
	if err != nil {
		return nil, err
	}
	v, found, err := child(owner, r.path, r.path.Len()-1, true)
	if err != nil {
		return nil, err
	}
	if found && v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem().Type(), nil
	}
	return v.Type(), nil
}

// Write stores value at the resolved property. Reachability is re-validated
// first: if an intermediate object is gone, Write fails with
// *UnresolvablePathError and nothing is modified.
func (r Resolution) Write(value any) error {
	return write(reflect.ValueOf(r.root), r.path, 0, value)
}

func (r Resolution) fail(i int, reason string) error {
	return unresolvable(r.path, i, reason)
}

// Get resolves expr under root and reads it.
func Get(root any, expr string) (any, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	res, err := Resolve(root, p)
	if err != nil {
		return nil, err
	}
	return res.Read()
}

// Set resolves expr under root and writes value to it.
func Set(root any, expr string, value any) error {
	p, err := Parse(expr)
	if err != nil {
		return err
	}
	res, err := Resolve(root, p)
	if err != nil {
		return err
	}
	return res.Write(value)
}

func unresolvable(p Path, i int, reason string) error {
	return &UnresolvablePathError{
		Path:    p.String(),
		Segment: p.Prefix(i + 1).String(),
		Reason:  reason,
	}
}

// walk returns the container holding the terminal segment of p.
func walk(root any, p Path) (reflect.Value, error) {
	v := reflect.ValueOf(root)
	for i := 0; i < p.Len()-1; i++ {
		next, found, err := child(v, p, i, false)
		if err != nil {
			return reflect.Value{}, err
		}
		if !found {
			return reflect.Value{}, unresolvable(p, i, "no such element")
		}
		v = next
	}
	if !v.IsValid() {
		return reflect.Value{}, unresolvable(p, -1, "root is nil")
	}
	return v, nil
}

// deref unwraps pointers and interfaces. It stops at values implementing
// KeyValueCoder so coders keep their receiver.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() {
		if asCoder(v) != nil {
			return v, true
		}
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			return v, true
		}
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, false
}

func asCoder(v reflect.Value) KeyValueCoder {
	if !v.IsValid() || !v.CanInterface() || !v.Type().Implements(kvcType) {
		return nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}
	kvc, _ := v.Interface().(KeyValueCoder)
	return kvc
}

// child selects segment i of p from v. found is false for a missing map key;
// terminal reports whether a missing key is acceptable (it is only at the
// end of the path, where a write can create it). For a missing key the
// returned value is a zero of the element type.
func child(v reflect.Value, p Path, i int, terminal bool) (reflect.Value, bool, error) {
	seg := p.segments[i]
	v, ok := deref(v)
	if !ok {
		if i == 0 {
			return reflect.Value{}, false, unresolvable(p, -1, "root is nil")
		}
		return reflect.Value{}, false, unresolvable(p, i-1, "value is nil")
	}

	if kvc := asCoder(v); kvc != nil {
		if seg.Kind == Index {
			return reflect.Value{}, false, unresolvable(p, i, "key-value coder cannot be indexed")
		}
		val, known := kvc.ValueForKey(seg.Name)
		if !known {
			return reflect.Value{}, false, unresolvable(p, i, "unknown key")
		}
		rv := reflect.ValueOf(&val).Elem()
		return rv, true, nil
	}

	switch v.Kind() {
	case reflect.Struct:
		if seg.Kind == Index {
			return reflect.Value{}, false, unresolvable(p, i, "struct cannot be indexed")
		}
		idx, ok := fieldIndex(v.Type(), seg.Name)
		if !ok {
			return reflect.Value{}, false, unresolvable(p, i, "no such field")
		}
		f, err := v.FieldByIndexErr(idx)
		if err != nil {
			return reflect.Value{}, false, unresolvable(p, i, "embedded struct is nil")
		}
		return f, true, nil

	case reflect.Map:
		key, err := mapKey(v.Type().Key(), seg)
		if err != nil {
			return reflect.Value{}, false, unresolvable(p, i, err.Error())
		}
		e := v.MapIndex(key)
		if !e.IsValid() {
			if !terminal {
				return reflect.Value{}, false, unresolvable(p, i, "no such key")
			}
			return reflect.New(v.Type().Elem()).Elem(), false, nil
		}
		return e, true, nil

	case reflect.Slice, reflect.Array:
		if seg.Kind != Index {
			return reflect.Value{}, false, unresolvable(p, i, fmt.Sprintf("%s requires an index", v.Kind()))
		}
		if seg.Index >= v.Len() {
			return reflect.Value{}, false, unresolvable(p, i, fmt.Sprintf("index %d out of bounds (len %d)", seg.Index, v.Len()))
		}
		return v.Index(seg.Index), true, nil
	}
	return reflect.Value{}, false, unresolvable(p, i, fmt.Sprintf("cannot traverse %s", v.Type()))
}

func mapKey(t reflect.Type, seg Segment) (reflect.Value, error) {
	switch {
	case t.Kind() == reflect.String && seg.Kind != Index:
		return reflect.ValueOf(seg.Name).Convert(t), nil
	case seg.Kind == Index && isIntegerKind(t.Kind()):
		k := reflect.New(t).Elem()
		if t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uintptr {
			k.SetUint(uint64(seg.Index))
		} else {
			k.SetInt(int64(seg.Index))
		}
		return k, nil
	}
	return reflect.Value{}, fmt.Errorf("map key type %s does not accept %s", t, seg)
}

func isIntegerKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Uintptr
}

// fieldIndex finds an exported field matching name: first by `bind` tag,
// then by Go name, then by the lowerCamel alias of the Go name.
func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	fields := reflect.VisibleFields(t)
	upper := upperFirst(name)
	for _, match := range []func(reflect.StructField) bool{
		func(f reflect.StructField) bool { return f.Tag.Get("bind") == name },
		func(f reflect.StructField) bool { return f.Name == name },
		func(f reflect.StructField) bool { return f.Name == upper },
	} {
		for _, f := range fields {
			if !f.IsExported() || f.Tag.Get("bind") == "-" || f.Anonymous {
				continue
			}
			if match(f) {
				return f.Index, true
			}
		}
	}
	return nil, false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// write descends from v to the terminal segment and stores value there.
// Containers that hand out copies (map elements, values boxed in
// interfaces) are copied, modified and stored back.
func write(v reflect.Value, p Path, i int, value any) error {
	for {
		if !v.IsValid() {
			return unresolvable(p, i-1, "value is nil")
		}
		if asCoder(v) != nil {
			break
		}
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return unresolvable(p, i-1, "value is nil")
			}
			v = v.Elem()
			continue
		}
		if v.Kind() == reflect.Interface {
			if v.IsNil() {
				return unresolvable(p, i-1, "value is nil")
			}
			inner := v.Elem()
			if needsCopy(inner) && v.CanSet() {
				tmp := reflect.New(inner.Type()).Elem()
				tmp.Set(inner)
				if err := write(tmp, p, i, value); err != nil {
					return err
				}
				v.Set(tmp)
				return nil
			}
			v = inner
			continue
		}
		break
	}

	seg := p.segments[i]
	last := i == p.Len()-1

	if kvc := asCoder(v); kvc != nil {
		if seg.Kind == Index {
			return unresolvable(p, i, "key-value coder cannot be indexed")
		}
		if last {
			if err := kvc.SetValueForKey(seg.Name, value); err != nil {
				return fmt.Errorf("set %q: %w", p.Prefix(i+1).String(), err)
			}
			return nil
		}
		cur, known := kvc.ValueForKey(seg.Name)
		if !known {
			return unresolvable(p, i, "unknown key")
		}
		tmp := reflect.ValueOf(&cur).Elem()
		if err := write(tmp, p, i+1, value); err != nil {
			return err
		}
		if needsCopyOrBoxed(cur) {
			return kvc.SetValueForKey(seg.Name, tmp.Interface())
		}
		return nil
	}

	if v.Kind() == reflect.Map {
		key, err := mapKey(v.Type().Key(), seg)
		if err != nil {
			return unresolvable(p, i, err.Error())
		}
		if last {
			x, err := coerce(value, v.Type().Elem())
			if err != nil {
				return err
			}
			if v.IsNil() {
				if !v.CanSet() {
					return unresolvable(p, i, "map is nil")
				}
				v.Set(reflect.MakeMap(v.Type()))
			}
			v.SetMapIndex(key, x)
			return nil
		}
		e := v.MapIndex(key)
		if !e.IsValid() {
			return unresolvable(p, i, "no such key")
		}
		tmp := reflect.New(e.Type()).Elem()
		tmp.Set(e)
		if err := write(tmp, p, i+1, value); err != nil {
			return err
		}
		v.SetMapIndex(key, tmp)
		return nil
	}

	target, found, err := child(v, p, i, last)
	if err != nil {
		return err
	}
	if !found {
		return unresolvable(p, i, "no such element")
	}
	if !last {
		return write(target, p, i+1, value)
	}
	if !target.CanSet() {
		return unresolvable(p, i, "property is not settable (pass a pointer root)")
	}
	x, err := coerce(value, target.Type())
	if err != nil {
		return err
	}
	target.Set(x)
	return nil
}

func needsCopy(v reflect.Value) bool {
	return v.Kind() == reflect.Struct || v.Kind() == reflect.Array
}

func needsCopyOrBoxed(x any) bool {
	return x != nil && needsCopy(reflect.ValueOf(x))
}

// coerce converts value to t, allowing numeric and string conversions
// between named and unnamed types of the same family.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, &convert.ConversionError{Reason: convert.TypeMismatch, Value: value, Target: t.String()}
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if sameFamily(v.Kind(), t.Kind()) && v.Type().ConvertibleTo(t) {
		if isIntegerKind(t.Kind()) && !fitsSign(v, t) {
			return reflect.Value{}, &convert.ConversionError{Reason: convert.OutOfRange, Value: value, Target: t.String()}
		}
		out := v.Convert(t)
		if isIntegerKind(t.Kind()) {
			// Reject truncating conversions into integers.
			if !out.Convert(v.Type()).Equal(v) {
				return reflect.Value{}, &convert.ConversionError{Reason: convert.OutOfRange, Value: value, Target: t.String()}
			}
		}
		return out, nil
	}
	return reflect.Value{}, &convert.ConversionError{Reason: convert.TypeMismatch, Value: value, Target: t.String()}
}

// fitsSign reports whether v keeps its sign in integer type t. A round trip
// through t cannot tell -1 from the maximum unsigned value.
func fitsSign(v reflect.Value, t reflect.Type) bool {
	unsigned := t.Kind() >= reflect.Uint && t.Kind() <= reflect.Uintptr
	switch k := v.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		return !unsigned || v.Int() >= 0
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return unsigned || v.Uint() <= math.MaxInt64
	case k == reflect.Float32 || k == reflect.Float64:
		return !unsigned || v.Float() >= 0
	}
	return true
}

func sameFamily(a, b reflect.Kind) bool {
	family := func(k reflect.Kind) string {
		switch {
		case isIntegerKind(k), k == reflect.Float32, k == reflect.Float64:
			return "number"
		case k == reflect.String:
			return "string"
		case k == reflect.Bool:
			return "bool"
		}
		return strings.ToLower(k.String())
	}
	return family(a) == family(b)
}
