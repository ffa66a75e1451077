// Package main is the entry point for the tesserad daemon.
package main

import (
	"os"

	"github.com/tessera-shell/tessera/internal/daemon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
