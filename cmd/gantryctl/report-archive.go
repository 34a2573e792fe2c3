package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/artifact"
	"gantry/pkg/config"
	"gantry/pkg/report"
)

// reportArchiveCmd represents the report archive command
var reportArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the current test reports",
	Long: `Archive the current test reports.

Copies junit and coverage files from the reports directory into a
timestamped run directory under the archive root, then renders the run
summary. Missing reports are noted but never fatal.

Example:
  gantryctl report archive`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		dir, err := artifact.Archive(cfg.ReportsDir, cfg.ArchiveDir, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		if _, err := report.Render(dir); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("Archived run to %s\n", dir)
	},
}

func init() {
	reportCmd.AddCommand(reportArchiveCmd)
}
