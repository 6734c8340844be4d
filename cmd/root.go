// Package cmd provides the command-line interface for running
// simulations built on devscore.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "devscore",
	Short: "devscore runs DEVS simulations from the command line.",
	Long: `devscore runs DEVS simulations from the command line. It loads ` +
		`a .env file into the environment if present and reports ` +
		`transition statistics once a run completes.`,
}

// Execute loads a .env file if present, runs the root command, and exits
// the process through atexit.Exit, which runs every registered atexit
// handler first. It does not return.
func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "devscore: could not load .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
