package keypath

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/viewbind/pkg/convert"
)

type settings struct {
	RetryCount int
	Attempts   uint
	Volume     float32
	Theme      string `bind:"appearance"`
	Tags       []string
	Limits     map[string]int
	secret     string
}

type profile struct {
	DisplayName string
}

type account struct {
	Profile *profile
	Flags   map[string]any
}

type model struct {
	Settings *settings
	Accounts []account
	Grid     [2][2]int
	Extra    any
	Store    *store
}

// store exposes its properties only by key.
type store struct {
	values map[string]any
}

func (s *store) ValueForKey(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *store) SetValueForKey(key string, value any) error {
	if key == "readonly" {
		return stderrors.New("read-only key")
	}
	s.values[key] = value
	return nil
}

func newModel() *model {
	return &model{
		Settings: &settings{
			RetryCount: 3,
			Attempts:   4,
			Volume:     0.5,
			Theme:      "dark",
			Tags:       []string{"a", "b"},
			Limits:     map[string]int{"daily": 10},
			secret:     "x",
		},
		Accounts: []account{
			{Profile: &profile{DisplayName: "Ada"}, Flags: map[string]any{"beta": true}},
			{Profile: nil},
		},
		Extra: map[string]any{"nested": profile{DisplayName: "boxed"}},
		Store: &store{values: map[string]any{"count": 1, "pair": profile{DisplayName: "p"}, "readonly": 0}},
	}
}

func TestReadWrite(t *testing.T) {
	tests := []struct {
		expr  string
		read  any
		write any
	}{
		{"settings.retryCount", 3, 7},
		{"Settings.RetryCount", 3, 8},
		{"settings.volume", float32(0.5), float32(0.25)},
		{"settings.appearance", "dark", "light"},
		{"settings.tags[1]", "b", "z"},
		{"settings.limits.daily", 10, 20},
		{`settings.limits["weekly"]`, 0, 70},
		{"accounts[0].profile.displayName", "Ada", "Grace"},
		{`accounts[0].flags["beta"]`, true, false},
		{"grid[1][0]", 0, 5},
		{`extra["nested"].displayName`, "boxed", "unboxed"},
		{"store.count", 1, 2},
		{"store.pair.displayName", "p", "q"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			m := newModel()
			got, err := Get(m, tt.expr)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.expr, err)
			}
			if got != tt.read {
				t.Errorf("Get(%q) = %v (%T), want %v (%T)", tt.expr, got, got, tt.read, tt.read)
			}
			if err := Set(m, tt.expr, tt.write); err != nil {
				t.Fatalf("Set(%q) error: %v", tt.expr, err)
			}
			got, err = Get(m, tt.expr)
			if err != nil {
				t.Fatalf("Get(%q) after Set error: %v", tt.expr, err)
			}
			if got != tt.write {
				t.Errorf("after Set, Get(%q) = %v, want %v", tt.expr, got, tt.write)
			}
		})
	}
}

func TestUnresolvable(t *testing.T) {
	m := newModel()
	m.Settings = nil
	tests := []struct {
		expr    string
		segment string
	}{
		{"settings.retryCount", "settings"},
		{"accounts[1].profile.displayName", "accounts[1].profile"},
		{"accounts[5].profile", "accounts[5]"},
		{"accounts[2]", "accounts[2]"},
		{"missing", "missing"},
		{"accounts.profile", "accounts.profile"},
		{"extra.gone.name", "extra.gone"},
		{"store.unknown", "store.unknown"},
		{"store[0]", "store[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Resolve(m, MustParse(tt.expr))
			var ue *UnresolvablePathError
			if !stderrors.As(err, &ue) {
				t.Fatalf("Resolve(%q) error = %v, want *UnresolvablePathError", tt.expr, err)
			}
			if ue.Segment != tt.segment {
				t.Errorf("Segment = %q, want %q (%s)", ue.Segment, tt.segment, ue.Reason)
			}
		})
	}
}

func TestUnexportedFieldsAreHidden(t *testing.T) {
	if _, err := Get(newModel(), "settings.secret"); err == nil {
		t.Error("unexported field should not resolve")
	}
}

func TestResolutionRevalidatesBeforeWrite(t *testing.T) {
	m := newModel()
	res, err := Resolve(m, MustParse("accounts[0].profile.displayName"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Property() != "displayName" {
		t.Errorf("Property() = %q", res.Property())
	}

	// The intermediate profile is replaced: the resolution follows it.
	m.Accounts[0].Profile = &profile{DisplayName: "Replaced"}
	if got, _ := res.Read(); got != "Replaced" {
		t.Errorf("Read() after replacement = %v, want Replaced", got)
	}

	// The collection shrinks: the write must fail and modify nothing.
	m.Accounts = m.Accounts[:0]
	var ue *UnresolvablePathError
	if err := res.Write("Ghost"); !stderrors.As(err, &ue) {
		t.Fatalf("Write after removal error = %v, want *UnresolvablePathError", err)
	}

	// The element comes back: the same resolution works again.
	m.Accounts = append(m.Accounts, account{Profile: &profile{}})
	if err := res.Write("Back"); err != nil {
		t.Fatalf("Write after re-insertion: %v", err)
	}
	if m.Accounts[0].Profile.DisplayName != "Back" {
		t.Errorf("DisplayName = %q, want Back", m.Accounts[0].Profile.DisplayName)
	}
}

func TestWriteTypeChecks(t *testing.T) {
	m := newModel()
	var ce *convert.ConversionError

	if err := Set(m, "settings.retryCount", "seven"); !stderrors.As(err, &ce) || ce.Reason != convert.TypeMismatch {
		t.Errorf("string into int error = %v, want TypeMismatch", err)
	}
	if err := Set(m, "settings.retryCount", 2.5); !stderrors.As(err, &ce) || ce.Reason != convert.OutOfRange {
		t.Errorf("2.5 into int error = %v, want OutOfRange", err)
	}
	if err := Set(m, "settings.retryCount", int64(9)); err != nil {
		t.Errorf("int64 into int: %v", err)
	}
	if m.Settings.RetryCount != 9 {
		t.Errorf("RetryCount = %d, want 9", m.Settings.RetryCount)
	}
	if err := Set(m, "settings.retryCount", uint64(1<<63)); !stderrors.As(err, &ce) || ce.Reason != convert.OutOfRange {
		t.Errorf("uint64 above MaxInt64 into int error = %v, want OutOfRange", err)
	}
	if err := Set(m, "settings.attempts", -1); !stderrors.As(err, &ce) || ce.Reason != convert.OutOfRange {
		t.Errorf("-1 into uint error = %v, want OutOfRange", err)
	}
	if err := Set(m, "settings.attempts", -2.0); !stderrors.As(err, &ce) || ce.Reason != convert.OutOfRange {
		t.Errorf("-2.0 into uint error = %v, want OutOfRange", err)
	}
	if m.Settings.Attempts != 4 {
		t.Errorf("Attempts = %d after rejected writes, want 4", m.Settings.Attempts)
	}
	if err := Set(m, "settings.attempts", 6); err != nil || m.Settings.Attempts != 6 {
		t.Errorf("6 into uint: err=%v Attempts=%d", err, m.Settings.Attempts)
	}
	if err := Set(m, "store.readonly", 1); err == nil {
		t.Error("coder rejection should surface")
	}
}

func TestWriteRequiresPointerRoot(t *testing.T) {
	var ue *UnresolvablePathError
	err := Set(profile{DisplayName: "x"}, "displayName", "y")
	if !stderrors.As(err, &ue) {
		t.Errorf("Set on value root error = %v, want *UnresolvablePathError", err)
	}
}

func TestType(t *testing.T) {
	m := newModel()
	res, err := Resolve(m, MustParse(`accounts[0].flags["beta"]`))
	if err != nil {
		t.Fatal(err)
	}
	typ, err := res.Type()
	if err != nil {
		t.Fatal(err)
	}
	if typ.Kind().String() != "bool" {
		t.Errorf("Type() = %v, want dynamic bool", typ)
	}

	res, err = Resolve(m, MustParse("settings.volume"))
	if err != nil {
		t.Fatal(err)
	}
	if typ, _ := res.Type(); typ.Name() != "float32" {
		t.Errorf("Type() = %v, want float32", typ)
	}
}
