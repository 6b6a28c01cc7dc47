package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flownote",
	Short: "FlowNote provisions and serves flow-flagged notebooks",
	Long: `FlowNote creates notebooks flagged for flow-driven behavior, tracks open
notebook panels and renders notebook outputs through a MIME renderer registry.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "flownote.yaml", "Path to the workspace configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}
