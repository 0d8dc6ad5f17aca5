// Package main provides the mudra command.
//
// Usage:
//
//	mudra [flags] <command> [args]
//
// Commands:
//
//	run     - track the webcam and emit hand signals
//	replay  - feed a recorded landmark file through the same pipeline
//	config  - write or print the configuration
//	labels  - list the signal labels actions can be bound to
//
// Configuration:
//
//	mudra reads ~/.mudra/config.yaml; a missing file means the defaults.
package main

import (
	"fmt"
	"os"

	"github.com/ayusman/mudra/cmd/mudra/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
