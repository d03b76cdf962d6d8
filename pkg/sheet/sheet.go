// Package sheet loads binding sheets: YAML files that declare, per control
// identifier, which model property the control shows.
//
//	bindings:
//	  volume: {keyPath: settings.volume, checked: true, animated: true}
//	  retries: {keyPath: "settings.retryCount", format: "precision=0"}
//	  nickname: settings.nickname
//
// The short form "id: keyPath" uses the descriptor defaults.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/convert"
)

// File is the decoded form of a binding sheet.
type File struct {
	Bindings map[string]Entry `yaml:"bindings"`
}

// Entry declares one binding.
type Entry struct {
	KeyPath  string `yaml:"keyPath"`
	Checked  *bool  `yaml:"checked,omitempty"`
	Animated bool   `yaml:"animated,omitempty"`
	Format   string `yaml:"format,omitempty"`

	// Line is the entry's line in the source, when known.
	Line int `yaml:"-"`
}

var entryFields = map[string]bool{
	"keyPath":  true,
	"checked":  true,
	"animated": true,
	"format":   true,
}

// UnmarshalYAML accepts the mapping form and the scalar short form.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*e = Entry{KeyPath: n.Value, Line: n.Line}
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: binding must be a key path or a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := n.Content[i]; !entryFields[key.Value] {
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	type plain Entry
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	e.Line = n.Line
	return nil
}

// Descriptor builds the descriptor the entry declares.
func (e Entry) Descriptor() (*bindings.Descriptor, error) {
	checked := true
	if e.Checked != nil {
		checked = *e.Checked
	}
	format := convert.DefaultFormat
	if e.Format != "" {
		f, err := convert.ParseFormat(e.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return bindings.NewDescriptor(e.KeyPath,
		bindings.Checked(checked),
		bindings.Animated(e.Animated),
		bindings.WithFormat(format),
	)
}

// EntryError reports an invalid entry.
type EntryError struct {
	ID   string
	Line int
	Err  error
}

func (e *EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("binding %q (line %d): %v", e.ID, e.Line, e.Err)
	}
	return fmt.Sprintf("binding %q: %v", e.ID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Decode parses sheet YAML without building descriptors. Unknown top-level
// fields are rejected.
func Decode(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse binding sheet: %w", err)
	}
	return &f, nil
}

// IDs returns the declared control identifiers in sorted order.
func (f *File) IDs() []string {
	ids := make([]string, 0, len(f.Bindings))
	for id := range f.Bindings {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Sheet builds a descriptor for every entry. All invalid entries are
// reported, each as an *EntryError.
func (f *File) Sheet() (bindings.Sheet, error) {
	sheet := make(bindings.Sheet, len(f.Bindings))
	var errs []error
	for _, id := range f.IDs() {
		e := f.Bindings[id]
		d, err := e.Descriptor()
		if err != nil {
			errs = append(errs, &EntryError{ID: id, Line: e.Line, Err: err})
			continue
		}
		sheet[id] = d
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sheet, nil
}

// Parse decodes sheet YAML and builds its descriptors.
func Parse(data []byte) (bindings.Sheet, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return f.Sheet()
}

// Load reads and parses the sheet at path.
func Load(path string) (bindings.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	sheet, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// LoadOptional is like Load but returns an empty sheet when path does not
// exist.
func LoadOptional(path string) (bindings.Sheet, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return bindings.Sheet{}, nil
	}
	return Load(path)
}
