// Package main contains the cli implementation of the tool. It uses the
// cobra package for cli tool implementation.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"csveng/internal/logging"
)

func main() {
	logging.Init()

	rootCmd := &cobra.Command{
		Use:   "csveng",
		Short: "Command-driven CSV data engine",
	}

	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(probeCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(processCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
