// Package lint reports problems in binding sheets.
package lint

import (
	"fmt"
	"os"

	"github.com/go-drift/viewbind/pkg/sheet"
)

// Problem is one finding in a sheet.
type Problem struct {
	File string
	Line int
	ID   string
	Msg  string
}

func (p Problem) String() string {
	loc := p.File
	if p.Line > 0 {
		loc = fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	if p.ID != "" {
		return fmt.Sprintf("%s: %s: %s", loc, p.ID, p.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, p.Msg)
}

// File checks the sheet at path. A sheet that cannot be read is an error;
// a sheet that cannot be parsed yields a single problem.
func File(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Check(path, data), nil
}

// Check reports the problems in sheet data read from name.
func Check(name string, data []byte) []Problem {
	f, err := sheet.Decode(data)
	if err != nil {
		return []Problem{{File: name, Msg: err.Error()}}
	}
	if len(f.Bindings) == 0 {
		return []Problem{{File: name, Msg: "sheet declares no bindings"}}
	}

	var problems []Problem
	for _, id := range f.IDs() {
		e := f.Bindings[id]
		if _, err := e.Descriptor(); err != nil {
			problems = append(problems, Problem{File: name, Line: e.Line, ID: id, Msg: err.Error()})
		}
	}
	return problems
}
