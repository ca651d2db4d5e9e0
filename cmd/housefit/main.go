/*
Command housefit fits house prices against floor area and compares richer
regression models on the same data.

Usage:

	housefit [command]

Available Commands:

	simple   Area-only least squares fit with a point prediction
	compare  Cross-validated comparison of six model configurations

Without a command both analyses run in order. Settings come from
housefit.yaml (or the file named by HOUSEFIT_CONFIG) and LOG_LEVEL.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
