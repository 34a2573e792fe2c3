// Package shell executes pipeline steps with an embedded POSIX shell
// interpreter, so step snippets behave the same on every agent regardless of
// the host shell.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ExitError reports a step that ran to completion with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Options control a single step execution.
type Options struct {
	// Dir is the working directory. Defaults to the process working dir.
	Dir string
	// Env entries (KEY=VALUE) appended to the inherited environment.
	Env []string
	// Stdout and Stderr receive the step's output. Default to os.Stdout/err.
	Stdout io.Writer
	Stderr io.Writer
}

// Validate parses the snippet and reports syntax errors without running it.
func Validate(snippet string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(snippet), "step")
	if err != nil {
		return fmt.Errorf("step syntax error: %w", err)
	}
	return nil
}

// Run executes a shell snippet in-process. The context cancels execution;
// non-zero exits are returned as *ExitError.
func Run(ctx context.Context, snippet string, opts Options) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(snippet), "step")
	if err != nil {
		return fmt.Errorf("failed to parse step: %w", err)
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	env := append(os.Environ(), opts.Env...)

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, opts.Stdout, opts.Stderr),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		if code, ok := interp.IsExitStatus(err); ok {
			return &ExitError{Code: int(code)}
		}
		return err
	}
	return nil
}
