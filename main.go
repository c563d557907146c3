// Package main is the entry point for the dk command.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zorak1103/dk/cmd"
)

func main() {
	// Unhandled panics print their stack trace and exit 1, like any local failure.
	// Exit code semantics: 0 = success, 1 = local error, 127 = engine not found,
	// anything else = the engine's own exit status
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nPANIC: %v\n", r)
			fmt.Fprintf(os.Stderr, "\nStack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
