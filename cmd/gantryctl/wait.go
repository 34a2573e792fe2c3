package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/stack"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the service under test to be ready",
	Long: `Wait for the service under test to be ready by polling its health URL.

This command will repeatedly check the configured health endpoint until it
responds successfully or the maximum number of retries is reached.

Example:
  gantryctl wait
  gantryctl wait --url http://localhost:8000/docs --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		retries, _ := cmd.Flags().GetInt("retries")
		if url == "" {
			url = config.Get().HealthURL
		}

		if err := stack.WaitReady(context.Background(), url, retries); err != nil {
			fmt.Fprintf(os.Stderr, "Service did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().StringP("url", "u", "", "Health URL to poll (defaults to the configured one)")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}
