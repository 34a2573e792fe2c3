package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/task"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [task]",
	Short: "Run a wrapper task (test, performance, clean)",
	Long: `Run one of the wrapper tasks against the service's test suite.

Without an argument the default test task runs: the non-performance test
subset with per-test data preservation switched off. The performance task
propagates its load parameters (users, rounds, batch) into the suite's
environment. The clean task resets the database schema through the
migration tool and requires DATABASE_URL.

Example:
  gantryctl run
  gantryctl run performance --users 500 --rounds 5
  gantryctl run clean`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		selected := task.TaskTest
		if len(args) > 0 {
			t, err := task.TaskString(args[0])
			if err != nil {
				fmt.Printf("Unknown task %q. Available tasks: %v\n", args[0], task.TaskStrings())
				_ = cmd.Usage()
				return
			}
			selected = t
		}

		runner := task.NewRunner(config.Get())
		runner.Preserve, _ = cmd.Flags().GetBool("preserve")
		runner.Perf.Users, _ = cmd.Flags().GetInt("users")
		runner.Perf.Rounds, _ = cmd.Flags().GetInt("rounds")
		runner.Perf.Batch, _ = cmd.Flags().GetInt("batch")

		if err := runner.Run(context.Background(), selected); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	defaults := task.DefaultPerfParams()
	runCmd.Flags().Int("users", envInt("PERF_USERS", defaults.Users), "Simulated user count for the performance task")
	runCmd.Flags().Int("rounds", envInt("PERF_ROUNDS", defaults.Rounds), "Number of load rounds for the performance task")
	runCmd.Flags().Int("batch", envInt("PERF_BATCH", defaults.Batch), "Record batch size for the performance task")
	runCmd.Flags().Bool("preserve", os.Getenv("TEST_DB_PRESERVE") != "", "Keep seeded test data after the run")
}

// envInt reads an integer environment variable, falling back on malformed or
// missing values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
