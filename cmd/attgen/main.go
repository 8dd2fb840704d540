package main

// ============================================================================
// attgen entry point
// Builds the CLI, runs it, exits 1 on error
// ============================================================================

import (
	"fmt"
	"os"

	"github.com/ChuLiYu/attgen/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	rootCmd := cli.BuildCLI()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
