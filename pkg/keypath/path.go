// Package keypath parses key path expressions and resolves them against Go
// model graphs.
//
// A key path names a property reachable from a root object:
//
//	settings.retryCount
//	accounts[2].profile.displayName
//	prefs["theme"].accent
//
// Dotted segments traverse struct fields, string-keyed maps and objects that
// implement [KeyValueCoder]. Bracketed numbers index slices, arrays and
// integer-keyed maps; bracketed quoted strings index string-keyed maps.
package keypath

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind identifies how a segment selects its child.
type SegmentKind int

const (
	// Field selects a named property: a struct field, map key or coder key.
	Field SegmentKind = iota
	// Index selects a numeric position in an ordered container.
	Index
	// Key selects a string key in a keyed container.
	Key
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

func (s Segment) String() string {
	switch s.Kind {
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	case Key:
		return "[" + strconv.Quote(s.Name) + "]"
	default:
		return s.Name
	}
}

// Path is a parsed, syntactically valid key path.
type Path struct {
	segments []Segment
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsZero reports whether p is the zero Path.
func (p Path) IsZero() bool { return len(p.segments) == 0 }

// Last returns the terminal segment.
func (p Path) Last() Segment {
	if len(p.segments) == 0 {
		return Segment{}
	}
	return p.segments[len(p.segments)-1]
}

// Prefix returns the path made of the first n segments.
func (p Path) Prefix(n int) Path {
	n = min(max(n, 0), len(p.segments))
	return Path{segments: p.segments[:n:n]}
}

// Same reports whether s and o may select the same child. A dotted name and a
// quoted key with that name both select a map entry, and a dotted name also
// matches its lowerCamel field alias.
func (s Segment) Same(o Segment) bool {
	if s.Kind == Index || o.Kind == Index {
		return s.Kind == o.Kind && s.Index == o.Index
	}
	if s.Name == o.Name {
		return true
	}
	if s.Kind == Field || o.Kind == Field {
		return upperFirst(s.Name) == upperFirst(o.Name)
	}
	return false
}

// HasPrefix reports whether q is a prefix of p (or equal to it), comparing
// segments with Segment.Same.
func (p Path) HasPrefix(q Path) bool {
	if len(q.segments) > len(p.segments) {
		return false
	}
	for i, s := range q.segments {
		if !p.segments[i].Same(s) {
			return false
		}
	}
	return true
}

// Overlaps reports whether a change at one path can affect the value at the
// other, i.e. one is a prefix of the other.
func (p Path) Overlaps(q Path) bool {
	return p.HasPrefix(q) || q.HasPrefix(p)
}

// String renders the canonical form of the path.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p.segments {
		if s.Kind == Field && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// MalformedKeyPathError reports a syntactically invalid key path expression.
type MalformedKeyPathError struct {
	Expr   string
	Offset int
	Reason string
}

func (e *MalformedKeyPathError) Error() string {
	return fmt.Sprintf("malformed key path %q at offset %d: %s", e.Expr, e.Offset, e.Reason)
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses a key path expression.
func Parse(expr string) (Path, error) {
	if strings.TrimSpace(expr) == "" {
		return Path{}, &MalformedKeyPathError{Expr: expr, Reason: "empty key path"}
	}
	s := &scanner{expr: expr}
	segments, err := s.parse()
	if err != nil {
		return Path{}, err
	}
	return Path{segments: segments}, nil
}

type scanner struct {
	expr string
	pos  int
}

func (s *scanner) fail(reason string) error {
	return &MalformedKeyPathError{Expr: s.expr, Offset: s.pos, Reason: reason}
}

func (s *scanner) eof() bool { return s.pos >= len(s.expr) }

// peek returns the current byte, or 0 at end of input. Callers test eof
// before treating 0 as the end.
func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.expr[s.pos]
}

func (s *scanner) parse() ([]Segment, error) {
	var segments []Segment
	for {
		// A path may open with a bracket when the root itself is a container.
		if len(segments) > 0 || s.peek() != '[' {
			name, err := s.ident()
			if err != nil {
				return nil, err
			}
			segments = append(segments, Segment{Kind: Field, Name: name})
		}
		for s.peek() == '[' {
			seg, err := s.bracket()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		}
		if s.eof() {
			return segments, nil
		}
		switch s.peek() {
		case '.':
			s.pos++
			if s.pos == len(s.expr) {
				return nil, s.fail("trailing '.'")
			}
		default:
			return nil, s.fail(fmt.Sprintf("unexpected %q", s.peek()))
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (s *scanner) ident() (string, error) {
	start := s.pos
	if !isIdentStart(s.peek()) {
		if s.eof() || s.peek() == '.' {
			return "", s.fail("empty segment")
		}
		return "", s.fail(fmt.Sprintf("invalid identifier start %q", s.peek()))
	}
	for s.pos < len(s.expr) && isIdentPart(s.expr[s.pos]) {
		s.pos++
	}
	return s.expr[start:s.pos], nil
}

func (s *scanner) bracket() (Segment, error) {
	open := s.pos
	s.pos++ // '['
	switch c := s.peek(); {
	case s.eof():
		s.pos = open
		return Segment{}, s.fail("unterminated '['")
	case c == '"' || c == '\'':
		key, err := s.quoted(c)
		if err != nil {
			return Segment{}, err
		}
		if s.peek() != ']' {
			return Segment{}, s.fail("expected ']' after key")
		}
		s.pos++
		return Segment{Kind: Key, Name: key}, nil
	case c >= '0' && c <= '9':
		start := s.pos
		for s.pos < len(s.expr) && s.expr[s.pos] >= '0' && s.expr[s.pos] <= '9' {
			s.pos++
		}
		if s.peek() != ']' {
			return Segment{}, s.fail("expected ']' after index")
		}
		n, err := strconv.Atoi(s.expr[start:s.pos])
		if err != nil {
			return Segment{}, s.fail("index out of range")
		}
		s.pos++
		return Segment{Kind: Index, Index: n}, nil
	case c == '-':
		return Segment{}, s.fail("negative index")
	default:
		return Segment{}, s.fail("expected index or quoted key")
	}
}

// quoted scans a quoted key with Go string escapes. Single-quoted keys are
// rewritten to a double-quoted literal before unquoting, with \' allowed.
func (s *scanner) quoted(quote byte) (string, error) {
	start := s.pos
	var lit strings.Builder
	lit.WriteByte('"')
	for s.pos++; ; s.pos++ {
		if s.eof() {
			s.pos = start
			return "", s.fail("unterminated quoted key")
		}
		c := s.expr[s.pos]
		switch {
		case c == quote:
			s.pos++
			lit.WriteByte('"')
			key, err := strconv.Unquote(lit.String())
			if err != nil {
				s.pos = start
				return "", s.fail("invalid escape in quoted key")
			}
			return key, nil
		case c == '\\' && s.pos+1 < len(s.expr):
			s.pos++
			if s.expr[s.pos] == '\'' {
				lit.WriteByte('\'')
			} else {
				lit.WriteByte('\\')
				lit.WriteByte(s.expr[s.pos])
			}
		case c == '"':
			lit.WriteString(`\"`)
		default:
			lit.WriteByte(c)
		}
	}
}
