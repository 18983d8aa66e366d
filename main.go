// Command go0r is the entry point of the frei0r plugin inspector CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ldo/go0r/cmd"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	cmd.SetVersionInfo(version, commit)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "go0r:", err)
		os.Exit(1)
	}
}
