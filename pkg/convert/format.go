package convert

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Format controls how native values are presented.
type Format struct {
	// Precision is the number of fraction digits used when rendering floats
	// as text. A negative value means the shortest representation that
	// parses back to the same float.
	Precision int
	// Locale selects locale-aware number formatting for display-only
	// controls. The zero Tag (und) means plain Go formatting.
	Locale language.Tag
	// Unit is appended to display-only text, e.g. "%" or " ms".
	Unit string
}

// DefaultFormat renders floats with the shortest exact representation.
var DefaultFormat = Format{Precision: -1}

// HasLocale reports whether a locale was set.
func (f Format) HasLocale() bool {
	return f.Locale != language.Und
}

// String renders f in the compact form accepted by ParseFormat.
func (f Format) String() string {
	var parts []string
	if f.Precision >= 0 {
		parts = append(parts, "precision="+strconv.Itoa(f.Precision))
	}
	if f.HasLocale() {
		parts = append(parts, "locale="+f.Locale.String())
	}
	if f.Unit != "" {
		parts = append(parts, "unit="+f.Unit)
	}
	return strings.Join(parts, ",")
}

// ParseFormat parses the compact "key=value,..." form used in binding
// sheets, e.g. "precision=2,locale=de-CH,unit=%". Unset keys keep their
// DefaultFormat values.
func ParseFormat(s string) (Format, error) {
	f := DefaultFormat
	s = strings.TrimSpace(s)
	if s == "" {
		return f, nil
	}
	for part := range strings.SplitSeq(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Format{}, fmt.Errorf("invalid format option %q: expected key=value", part)
		}
		key = strings.TrimSpace(key)
		switch key {
		case "precision":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return Format{}, fmt.Errorf("invalid precision %q: %w", value, err)
			}
			f.Precision = n
		case "locale":
			tag, err := language.Parse(strings.TrimSpace(value))
			if err != nil {
				return Format{}, fmt.Errorf("invalid locale %q: %w", value, err)
			}
			f.Locale = tag
		case "unit":
			// Units keep their spacing, so " ms" stays distinct from "ms".
			f.Unit = value
		default:
			return Format{}, fmt.Errorf("unknown format option %q", key)
		}
	}
	return f, nil
}
