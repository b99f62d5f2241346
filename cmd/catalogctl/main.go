// Command catalogctl inspects recipe catalogue files offline: it validates them,
// lists their tags and runs the same queries the API serves.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
