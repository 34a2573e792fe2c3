package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run and validate delivery pipelines",
	Long:  `Run and validate the sequential delivery pipeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'pipeline' requires a subcommand (run, validate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}
