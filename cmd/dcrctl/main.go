// Command dcrctl loads a DCR graph from a canonical-JSON file and runs the
// enabledness, execution, replay, conformance, and alignment operations
// against it from the shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dcrctl:", err)
		os.Exit(exitCode(err))
	}
}
