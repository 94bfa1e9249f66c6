// Package cmd implements the edubridge CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🎒"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "edubridge",
	Short: logo + " edubridge — Edupage MCP server",
	Long:  logo + " edubridge — an MCP server exposing Edupage school data to AI assistants",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}
