package controls

import (
	"reflect"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

const ellipsis = "…"

// Label displays read-only text. When MaxWidth is set, text wider than
// MaxWidth pixels in Face is cut and ends with an ellipsis.
type Label struct {
	Name string
	// MaxWidth is the available width in pixels. Zero means unlimited.
	MaxWidth int
	// Face measures text. Nil means basicfont.Face7x13.
	Face font.Face

	text     string
	rendered string
	edits
}

// ID implements bindings.Identified.
func (l *Label) ID() string { return l.Name }

// Children implements bindings.Node.
func (l *Label) Children() []bindings.Node { return nil }

// Converter implements bindings.Adapter.
func (l *Label) Converter() convert.Converter { return convert.Display{} }

// SupportsModelType implements bindings.Adapter.
func (l *Label) SupportsModelType(t reflect.Type) bool {
	return convert.Display{}.Supports(t)
}

// DisplayValue implements bindings.Adapter.
func (l *Label) DisplayValue(native any, _ bool) {
	s, ok := native.(string)
	if !ok {
		return
	}
	l.text = s
	l.rendered = l.truncate(s)
}

// CurrentNativeValue implements bindings.Adapter.
func (l *Label) CurrentNativeValue() any { return l.text }

// ObserveUserEdits implements bindings.Adapter. Labels are not editable.
func (l *Label) ObserveUserEdits(func()) (cancel func()) { return noEdits }

// Enabled implements bindings.Adapter.
func (l *Label) Enabled() bool { return false }

// Text returns the full text.
func (l *Label) Text() string { return l.text }

// Rendered returns the text as it fits in MaxWidth.
func (l *Label) Rendered() string { return l.rendered }

// Dispose detaches bindings.
func (l *Label) Dispose() { l.dispose() }

func (l *Label) face() font.Face {
	if l.Face == nil {
		return basicfont.Face7x13
	}
	return l.Face
}

func (l *Label) truncate(s string) string {
	if l.MaxWidth <= 0 {
		return s
	}
	face := l.face()
	limit := fixed.I(l.MaxWidth)
	if font.MeasureString(face, s) <= limit {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n >= 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if font.MeasureString(face, candidate) <= limit {
			return candidate
		}
	}
	return ""
}
