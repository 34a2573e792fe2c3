package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/report"
)

// reportRenderCmd represents the report render command
var reportRenderCmd = &cobra.Command{
	Use:   "render [dir]",
	Short: "Render the summary for an archived run",
	Long: `Render the summary for an archived run.

Writes summary.md and summary.html next to the archived reports. Without
an argument the newest archived run is rendered.

Example:
  gantryctl report render
  gantryctl report render artifacts/run-20260826T101500`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		dir := ""
		if len(args) > 0 {
			dir = args[0]
		} else {
			latest, err := latestArchiveDir(cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			dir = latest
		}

		path, err := report.Render(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("Summary written to %s\n", path)
	},
}

func init() {
	reportCmd.AddCommand(reportRenderCmd)
}
