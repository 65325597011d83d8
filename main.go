// Package main is the entry point for the textline command.
package main

import (
	"os"

	"github.com/chenjing1294/AvaloniaEdit/cmd"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
