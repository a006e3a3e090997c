// SPDX-License-Identifier: MIT
// Command osprey-check validates an array document and prints a YAML report.
//
// Usage:
//
//	osprey-check [--config FILE] [--sparse-format csr] [--dtype float32] arrays.yaml
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/osprey/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
