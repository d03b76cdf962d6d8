package cmd

import (
	"fmt"

	"github.com/go-drift/viewbind/cmd/bindcheck/internal/lint"
	"github.com/go-drift/viewbind/cmd/bindcheck/internal/project"
)

func init() {
	RegisterCommand(&Command{
		Name:  "lint",
		Short: "Check binding sheets for errors",
		Long: `Check binding sheets for errors.

Without arguments, every *.bindings.yaml file in the current Go module is
checked. Directories and files may be given instead.

Each problem is printed as file:line: message. The command fails when any
problem is found.`,
		Usage: "bindcheck lint [path...]",
		Run:   runLint,
	})
}

func runLint(args []string) error {
	proj, files, err := resolveSheets(args)
	if err != nil {
		return err
	}

	var count int
	for _, file := range files {
		problems, err := lint.File(file)
		if err != nil {
			return err
		}
		for _, p := range problems {
			p.File = proj.Rel(p.File)
			fmt.Fprintln(stdout, p)
		}
		count += len(problems)
	}

	if count > 0 {
		return fmt.Errorf("%d problem(s) in %d sheet(s)", count, len(files))
	}
	fmt.Fprintf(stdout, "%s: %d sheet(s) ok\n", proj.Name, len(files))
	return nil
}

func resolveSheets(args []string) (*project.Project, []string, error) {
	root, err := project.FindRoot("")
	if err != nil {
		return nil, nil, err
	}
	proj, err := project.Resolve(root)
	if err != nil {
		return nil, nil, err
	}
	if len(args) == 0 {
		args = []string{root}
	}
	var files []string
	for _, arg := range args {
		found, err := project.FindSheets(arg)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, found...)
	}
	return proj, files, nil
}
