// Package main is the entry point for the tessera CLI.
package main

import (
	"os"

	"github.com/tessera-shell/tessera/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
