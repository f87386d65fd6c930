// Package main provides the poetic command-line checker.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
	appName = "poetic"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	dataDir   string
	form      string
	logLevel  string
	jsonOut   bool
	threshold float64

	log *zap.Logger
}
