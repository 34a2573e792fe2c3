package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/task"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Watch paths and re-run the test task on changes",
	Long: `Watch paths and re-run the test task when a file changes.

Each write or create event under a watched path triggers the default test
task. Events arriving while a run is in progress collapse into a single
follow-up run.

Example:
  gantryctl watch app tests`,
	Run: func(cmd *cobra.Command, args []string) {
		paths := args
		if len(paths) == 0 {
			paths = []string{"."}
		}

		if err := watchAndRun(paths); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchAndRun(paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	fmt.Printf("Watching %v for changes\n", paths)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runner := task.NewRunner(config.Get())
	runTests := func() {
		if err := runner.Run(context.Background(), task.TaskTest); err != nil {
			fmt.Fprintf(os.Stderr, "Test run failed: %v\n", err)
		} else {
			fmt.Println("Tests passed")
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isChange(event.Op) {
				fmt.Printf("[%s] %s changed, re-running tests...\n", time.Now().Format(time.RFC3339), event.Name)
				runTests()

				// Changes queued while the run was in progress collapse
				// into a single follow-up run.
				if drainPending(watcher.Events) {
					fmt.Println("Files changed during the run, re-running tests...")
					runTests()
					drainPending(watcher.Events)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func isChange(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create) != 0
}

// drainPending empties the queued events and reports whether any of them
// would have triggered a run of its own.
func drainPending(events <-chan fsnotify.Event) bool {
	pending := false
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return pending
			}
			if isChange(event.Op) {
				pending = true
			}
		default:
			return pending
		}
	}
}
