// Package bootstrap locates a working interpreter and provisions the
// isolated dependency environment used by the test runner.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoInterpreter is returned when none of the candidates responds to a
// version check. It is terminal: no test execution may begin after it.
var ErrNoInterpreter = errors.New("no usable interpreter found")

// Candidate is one entry of the ordered probe list. A candidate may carry
// arguments (e.g. "py -3").
type Candidate struct {
	Command string
	Args    []string
}

// ParseCandidate splits a candidate string into command and arguments.
func ParseCandidate(s string) Candidate {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Candidate{}
	}
	return Candidate{Command: fields[0], Args: fields[1:]}
}

func (c Candidate) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// Env describes a provisioned isolated environment.
type Env struct {
	// Interpreter is the accepted candidate the environment was created with.
	Interpreter Candidate
	// Root is the environment directory.
	Root string
	// Created reports whether this run created the environment (false when
	// it already existed).
	Created bool
}

// Python returns the path of the environment's own interpreter.
func (e Env) Python() string {
	return filepath.Join(e.Root, binDir(), "python")
}

// Pip returns the path of the environment's package installer.
func (e Env) Pip() string {
	return filepath.Join(e.Root, binDir(), "pip")
}

func binDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// Probe tries each candidate in order and returns the first one that passes
// a version check. Returns ErrNoInterpreter if the list is exhausted.
func Probe(ctx context.Context, candidates []string) (Candidate, error) {
	for _, raw := range candidates {
		cand := ParseCandidate(raw)
		if cand.Command == "" {
			continue
		}

		args := append(append([]string{}, cand.Args...), "--version")
		cmd := exec.CommandContext(ctx, cand.Command, args...)
		if err := cmd.Run(); err != nil {
			fmt.Printf("  %s: not usable (%v)\n", cand, err)
			continue
		}

		fmt.Printf("  %s: ok\n", cand)
		return cand, nil
	}
	return Candidate{}, ErrNoInterpreter
}

// Setup runs the whole bootstrap routine: probe, create the environment if
// absent, and install the dependency manifest. Any installation failure
// aborts with a wrapped error; the candidate list is never re-tried.
func Setup(ctx context.Context, candidates []string, venvDir, requirementsFile string) (Env, error) {
	fmt.Println("Probing interpreter candidates...")
	cand, err := Probe(ctx, candidates)
	if err != nil {
		return Env{}, err
	}

	env := Env{Interpreter: cand, Root: venvDir}

	if _, statErr := os.Stat(venvDir); os.IsNotExist(statErr) {
		fmt.Printf("Creating isolated environment in %s...\n", venvDir)
		args := append(append([]string{}, cand.Args...), "-m", "venv", venvDir)
		cmd := exec.CommandContext(ctx, cand.Command, args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return Env{}, fmt.Errorf("failed to create environment in %s: %w", venvDir, err)
		}
		env.Created = true
	} else {
		fmt.Printf("Reusing existing environment in %s\n", venvDir)
	}

	if requirementsFile != "" {
		if _, statErr := os.Stat(requirementsFile); statErr != nil {
			return Env{}, fmt.Errorf("dependency manifest %s not found: %w", requirementsFile, statErr)
		}

		fmt.Printf("Installing dependencies from %s...\n", requirementsFile)
		cmd := exec.CommandContext(ctx, env.Pip(), "install", "-r", requirementsFile)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return Env{}, fmt.Errorf("dependency installation failed: %w", err)
		}
	}

	return env, nil
}
