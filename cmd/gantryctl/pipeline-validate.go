package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/pipeline"
)

// pipelineValidateCmd represents the pipeline validate command
var pipelineValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a pipeline definition",
	Long: `Validate a pipeline definition without running it.

Checks stage names, step shapes, builtin names and the syntax of every
shell snippet.

Example:
  gantryctl pipeline validate
  gantryctl pipeline validate ci/nightly.yml`,
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

		fmt.Printf("Pipeline %q is valid (%d stage(s), timeout %s)\n", p.Name, len(p.Stages), p.Timeout())
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineValidateCmd)
}
