// Package version provides version information and display utilities for
// CSVRoll.
package version

import (
	"fmt"
	"os"
)

const (
	// Name of CSVRoll.
	Name string = "CSVRoll"
	// Version of CSVRoll.
	Version string = "1.1.0"
)

// String returns a plain text representation of the version information.
func String() string {
	return fmt.Sprintf("%s %s", Name, Version)
}

// Print the version.
func Print() {
	fmt.Println(String())
}

// PrintAndExit prints the program version and exits.
func PrintAndExit() {
	Print()
	os.Exit(0)
}
