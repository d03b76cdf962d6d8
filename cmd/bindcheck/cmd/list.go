package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-drift/viewbind/pkg/sheet"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List declared bindings",
		Long: `List the bindings declared by binding sheets.

Prints one line per control identifier with its key path and options.`,
		Usage: "bindcheck list [path...]",
		Run:   runList,
	})
}

func runList(args []string) error {
	proj, files, err := resolveSheets(args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHEET\tID\tKEY PATH\tCHECKED\tANIMATED\tFORMAT")
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		f, err := sheet.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", proj.Rel(file), err)
		}
		for _, id := range f.IDs() {
			e := f.Bindings[id]
			checked := e.Checked == nil || *e.Checked
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\t%s\n", proj.Rel(file), id, e.KeyPath, checked, e.Animated, e.Format)
		}
	}
	return w.Flush()
}
