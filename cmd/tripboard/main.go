// Package main provides the tripboard CLI: a collaborative trip-planning
// board driven by the reconciliation engine in pkg/board.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitUserError)
	}
}
