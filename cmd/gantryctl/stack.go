package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// stackCmd represents the stack command
var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Manage the integration test container stack",
	Long:  `Manage the docker compose stack used by the integration tests.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'stack' requires a subcommand (up, down)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(stackCmd)
}
