package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stepbook/flownote/internal/cli"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new flow-flagged notebook",
	Long: `Creates an untitled notebook in the configured store, flags it with
use_stepbook metadata and saves it. If the store declines to open the
document the notebook is still created, just left unflagged.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		dir, _ := cmd.Flags().GetString("dir")
		jsonMode, _ := cmd.Flags().GetBool("json")

		err := cli.RunNew(context.Background(), os.Stdout, cli.NewOptions{
			ConfigPath: configPath,
			Dir:        dir,
			Debug:      debug,
			JSON:       jsonMode,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringP("dir", "d", "", "Directory to create the notebook in (relative to the workspace root)")
	newCmd.Flags().Bool("json", false, "Print the outcome as JSON")
}
