// Package main is the entry point for the shipquickr CLI.
package main

import (
	"os"

	"shipquickr/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
