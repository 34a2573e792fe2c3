package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/history"
	"gantry/pkg/pipeline"
)

// pipelineRunCmd represents the pipeline run command
var pipelineRunCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute the delivery pipeline",
	Long: `Execute the delivery pipeline.

Stages run strictly in order and the run stops at the first failure.
Terminal hooks always run afterwards, even when the run timed out. Without
an argument the definition is read from gantry-pipeline.yml in the working
directory, falling back to the built-in default.

Run events are recorded to the database when DATABASE_URL is set.

Example:
  gantryctl pipeline run
  gantryctl pipeline run ci/nightly.yml`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		p, err := pipeline.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		hist, err := history.NewStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", err)
		}
		if hist != nil {
			if err := hist.EnsureSchema(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: run history disabled: %v\n", err)
				hist = nil
			}
			defer func() {
				if hist != nil {
					_ = hist.Close()
				}
			}()
		}

		engine := pipeline.NewEngine(config.Get(), hist)
		result, err := engine.Run(context.Background(), p)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		if result.ArchiveDir != "" {
			fmt.Printf("Artifacts archived to %s\n", result.ArchiveDir)
		}
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineRunCmd)
}
