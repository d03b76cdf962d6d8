// Command bindcheck validates the binding sheets of a Go project.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/viewbind/cmd/bindcheck/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
