package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stepbook/flownote"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the FlowNote version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flownote %s\n", flownote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
