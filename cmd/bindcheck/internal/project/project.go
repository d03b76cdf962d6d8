// Package project locates a Go module and the binding sheets inside it.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// SheetSuffix is the file name suffix of binding sheets.
const SheetSuffix = ".bindings.yaml"

// Project describes the module being checked.
type Project struct {
	Root       string
	ModulePath string
	Name       string
}

// FindRoot walks up from dir to the nearest directory containing go.mod.
// An empty dir means the current directory.
func FindRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// Resolve reads the module at root.
func Resolve(root string) (*Project, error) {
	modulePath, err := modulePath(root)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:       root,
		ModulePath: modulePath,
		Name:       moduleName(modulePath, root),
	}, nil
}

// Rel returns path relative to the project root when it lies inside it.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

// moduleName is the last element of the module path without its major
// version suffix.
func moduleName(modulePath, dir string) string {
	name := filepath.Base(dir)
	if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
		parts := strings.Split(prefix, "/")
		name = parts[len(parts)-1]
	}
	if name == "" {
		return "module"
	}
	return name
}

// FindSheets returns the binding sheets at path: path itself when it is a
// file, otherwise every sheet below it. Directories the go tool ignores
// (names starting with "." or "_", and testdata) and vendor are skipped.
func FindSheets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var sheets []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), SheetSuffix) {
			sheets = append(sheets, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(sheets)
	return sheets, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "testdata" || name == "vendor"
}
