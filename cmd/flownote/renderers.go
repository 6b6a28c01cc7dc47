package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stepbook/flownote/internal/cli"
)

// renderersCmd represents the renderers command
var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "List registered MIME renderers",
	Long:  `Prints the registered MIME types and their ranks, most preferred first.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		if err := cli.RunRenderers(os.Stdout, configPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderersCmd)
}
