package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stepbook/flownote/internal/cli"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <path>",
	Short: "Render a notebook to the terminal",
	Long: `Loads a notebook and renders its cells: markdown cells are styled for the
terminal, code cell outputs go through the MIME renderer registry, which
picks the best registered representation per output.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")

		err := cli.RunRender(context.Background(), os.Stdout, cli.RenderOptions{
			ConfigPath: configPath,
			Path:       args[0],
			Debug:      debug,
			Plain:      plain,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Bool("plain", false, "Force style-free output")
}
