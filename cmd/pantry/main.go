// Package main provides the pantry CLI: validation, expansion, and
// workspace indexing of dependency-groups tables in project manifests.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
