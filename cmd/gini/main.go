// Package main is the entry point for the gini CLI.
package main

import (
	"os"

	"github.com/f3rmion/gini/cmd/gini/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
