// Package main is the journal command line: import CSV exports, print
// statistics and apply database migrations.
//
// Usage:
//
//	go run ./cmd/journal import trades.csv
//	go run ./cmd/journal stats --account eval-50k
//	go run ./cmd/journal compare instrument
package main

import (
	"os"

	"trade-journal/cmd/journal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
