package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gantryctl",
	Short: "CI test orchestration for the appointment service",
	Long: `gantryctl drives the service's CI flow: environment bootstrap, test
execution, schema resets, the integration container stack, image builds and
artifact publishing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
