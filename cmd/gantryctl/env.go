package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// envCmd represents the env command
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Manage the test execution environment",
	Long:  `Manage the isolated interpreter environment the test suite runs in.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'env' requires a subcommand (setup, doctor)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
