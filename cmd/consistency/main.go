// SPDX-License-Identifier: MIT

// Command consistency scores how consistent each agent of a population is
// with the rest of the group.
//
// Usage:
//
//	consistency score --config engine.yaml --format table population.yaml
//	consistency watch --config engine.yaml population.yaml
//	consistency version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
