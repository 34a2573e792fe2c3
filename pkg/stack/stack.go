// Package stack orchestrates the multi-container test environment and the
// service image around a test run. All container work shells out to the
// docker CLI; gantry never reimplements the container runtime.
package stack

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"
)

// Stack identifies one compose project.
type Stack struct {
	// ComposeFile is the compose definition for the test environment.
	ComposeFile string
	// Project isolates this run's containers, networks and volumes.
	Project string
}

func (s Stack) composeArgs(extra ...string) []string {
	args := []string{"compose", "-f", s.ComposeFile, "-p", s.Project}
	return append(args, extra...)
}

func (s Stack) run(ctx context.Context, extra ...string) error {
	cmd := exec.CommandContext(ctx, "docker", s.composeArgs(extra...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Up brings the test environment up, building images as needed. It blocks
// until the containers are started.
func (s Stack) Up(ctx context.Context) error {
	fmt.Printf("Bringing up stack %s (%s)...\n", s.Project, s.ComposeFile)
	if err := s.run(ctx, "up", "-d", "--build"); err != nil {
		return fmt.Errorf("failed to bring up stack %s: %w", s.Project, err)
	}
	return nil
}

// Down tears the environment down, removing volumes and orphans.
func (s Stack) Down(ctx context.Context) error {
	fmt.Printf("Tearing down stack %s...\n", s.Project)
	if err := s.run(ctx, "down", "-v", "--remove-orphans"); err != nil {
		return fmt.Errorf("failed to tear down stack %s: %w", s.Project, err)
	}
	return nil
}

// DownBestEffort is Down for terminal hooks: failures are logged and
// swallowed so cleanup never masks the run result.
func (s Stack) DownBestEffort(ctx context.Context) {
	if err := s.Down(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// WaitReady polls url until it answers with a 2xx status, printing a dot per
// attempt. One attempt is made per second.
func WaitReady(ctx context.Context, url string, retries int) error {
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Printf("Waiting for %s to be ready...\n", url)

	for i := 0; i < retries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				fmt.Println()
				fmt.Println("Service is ready")
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("service at %s is not ready after %d seconds", url, retries)
}
