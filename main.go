// ABOUTME: Entry point for the bookhaven CLI
// ABOUTME: Terminal client for the BookHaven book review service

package main

import (
	"fmt"
	"os"

	"github.com/bookhaven/bookhaven-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
