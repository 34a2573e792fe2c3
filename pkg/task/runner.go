package task

import (
	"context"
	"fmt"
	"io"
	"os"

	"gantry/pkg/config"
	"gantry/pkg/db"
	"gantry/pkg/dbstate"
	"gantry/pkg/shell"
)

// Runner executes wrapper tasks against the configured test runner.
type Runner struct {
	Config *config.Config

	// Stdout and Stderr receive runner output; default to the process's.
	Stdout io.Writer
	Stderr io.Writer

	// Preserve keeps per-test data when the test task runs.
	Preserve bool

	// Perf carries the load parameters for the performance task.
	Perf PerfParams
}

// NewRunner builds a runner with default parameters.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Perf:   DefaultPerfParams(),
	}
}

// Run dispatches the selected task.
func (r *Runner) Run(ctx context.Context, t Task) error {
	switch t {
	case TaskTest:
		return r.runTest(ctx)
	case TaskPerformance:
		return r.runPerformance(ctx)
	case TaskClean:
		return r.runClean()
	default:
		return fmt.Errorf("unknown task %q", t)
	}
}

// runTest invokes the non-performance test subset. Unless preservation was
// requested, the data-preservation flag is cleared so every run starts from
// isolated state.
func (r *Runner) runTest(ctx context.Context) error {
	env := []string{dbstate.PreserveEnvVar + "="}
	if r.Preserve {
		env = []string{dbstate.PreserveEnvVar + "=1"}
	}

	fmt.Println("Running test subset...")
	return shell.Run(ctx, r.Config.TestCommand, shell.Options{
		Env:    env,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	})
}

// runPerformance invokes the performance subset with the three load
// parameters propagated unchanged into the runner's environment.
func (r *Runner) runPerformance(ctx context.Context) error {
	fmt.Printf("Running performance subset (users=%d rounds=%d batch=%d)...\n",
		r.Perf.Users, r.Perf.Rounds, r.Perf.Batch)

	return shell.Run(ctx, r.Config.PerfCommand, shell.Options{
		Env:    r.Perf.Env(),
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	})
}

// runClean resets persistent schema state. The connection preflight happens
// before anything destructive.
func (r *Runner) runClean() error {
	dbURL := db.URL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if err := dbstate.Ping(dbURL); err != nil {
		return err
	}
	return dbstate.Reset(dbURL)
}
