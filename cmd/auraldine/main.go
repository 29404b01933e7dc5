// Package main provides the auraldine CLI tool.
//
// Usage:
//
//	auraldine [flags] <command> [args]
//
// Commands:
//
//	extract  - Run the feature pipeline on an audio file
//	windows  - Show the model-ready windows of an audio file
//	preview  - Write the preview window as a WAV file
//	profile  - Pipeline profile management
//
// Configuration:
//
//	The CLI stores configuration in ~/.auraldine/auraldine/
//	Use 'auraldine profile' commands to manage profiles.
package main

import (
	"fmt"
	"os"

	"github.com/Mer315/AuralDine/cmd/auraldine/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
