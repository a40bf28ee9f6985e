// Command webcraftctl submits the agency's public forms from a terminal,
// running the same validation and wizard logic as the website.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
