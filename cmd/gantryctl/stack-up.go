package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/stack"
)

// stackUpCmd represents the stack up command
var stackUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring up the integration test stack",
	Long: `Bring up the integration test stack.

Starts the compose project in detached mode, building images as needed.
With --wait the command then polls the health endpoint until the service
answers.

Example:
  gantryctl stack up
  gantryctl stack up --wait`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		s := stack.Stack{ComposeFile: cfg.ComposeFile, Project: cfg.ComposeProject}
		ctx := context.Background()

		if err := s.Up(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		if wait, _ := cmd.Flags().GetBool("wait"); wait {
			retries, _ := cmd.Flags().GetInt("retries")
			if err := stack.WaitReady(ctx, cfg.HealthURL, retries); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
		}
	},
}

// stackDownCmd represents the stack down command
var stackDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Tear down the integration test stack",
	Long: `Tear down the integration test stack.

Stops the compose project and removes its volumes and orphan containers.

Example:
  gantryctl stack down`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		s := stack.Stack{ComposeFile: cfg.ComposeFile, Project: cfg.ComposeProject}

		if err := s.Down(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	stackCmd.AddCommand(stackUpCmd)
	stackCmd.AddCommand(stackDownCmd)
	stackUpCmd.Flags().Bool("wait", false, "Wait for the service health endpoint after startup")
	stackUpCmd.Flags().IntP("retries", "r", 90, "Number of health check retries")
}
