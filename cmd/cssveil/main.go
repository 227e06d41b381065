// Package main provides the cssveil CLI tool for consistent selector
// renaming across HTML/CSS/JS trees.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
