package bindings_test

import (
	stderrors "errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
	"github.com/go-drift/viewbind/pkg/keypath"
)

func TestNewDescriptorDefaults(t *testing.T) {
	d, err := bindings.NewDescriptor("settings.volume")
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	if got := d.KeyPath().String(); got != "settings.volume" {
		t.Errorf("KeyPath = %q", got)
	}
	if !d.CheckedOnInput() {
		t.Error("input should be checked by default")
	}
	if d.Animated() {
		t.Error("display should not animate by default")
	}
	if d.Format() != convert.DefaultFormat {
		t.Errorf("Format = %+v, want DefaultFormat", d.Format())
	}
}

func TestNewDescriptorOptions(t *testing.T) {
	f := convert.Format{Precision: 2, Locale: language.German, Unit: "%"}
	d := bindings.MustDescriptor("items[0].price",
		bindings.Checked(false),
		bindings.Animated(true),
		bindings.WithFormat(f),
	)
	if d.CheckedOnInput() || !d.Animated() || d.Format() != f {
		t.Errorf("options not applied: %s", d)
	}
	want := "items[0].price checked=false animated=true format=precision=2,locale=de,unit=%"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewDescriptorMalformed(t *testing.T) {
	for _, expr := range []string{"", "settings..volume", "items[-1]", "items[0", "1abc"} {
		t.Run(expr, func(t *testing.T) {
			d, err := bindings.NewDescriptor(expr)
			if d != nil {
				t.Errorf("got descriptor %v for malformed %q", d, expr)
			}
			var me *keypath.MalformedKeyPathError
			if !stderrors.As(err, &me) {
				t.Fatalf("err = %v, want *MalformedKeyPathError", err)
			}
		})
	}
}
