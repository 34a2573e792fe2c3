package pipeline

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gantry/pkg/shell"
)

// DefaultFileName is the pipeline definition looked up in the working
// directory when none is given.
const DefaultFileName = "gantry-pipeline.yml"

//go:embed default_pipeline.yml
var defaultDefinition []byte

// Pipeline is an ordered list of stages with run-level terminal hooks.
type Pipeline struct {
	Name           string            `yaml:"name"`
	TimeoutMinutes int               `yaml:"timeout_minutes"`
	Env            map[string]string `yaml:"env"`
	Stages         []Stage           `yaml:"stages"`
	Post           Hooks             `yaml:"post"`
}

// Stage is one named, sequential phase.
type Stage struct {
	Name string `yaml:"name"`
	// Enabled defaults to true; the definition can park stages (lint,
	// security scan) without deleting them.
	Enabled *bool  `yaml:"enabled"`
	When    string `yaml:"when"`
	Steps   []Step `yaml:"steps"`
	Post    Hooks  `yaml:"post"`
}

// IsEnabled reports whether the stage should run at all.
func (s Stage) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Step is either a shell snippet (Run) or a named builtin.
type Step struct {
	Name    string            `yaml:"name"`
	Run     string            `yaml:"run"`
	Builtin string            `yaml:"builtin"`
	Env     map[string]string `yaml:"env"`
}

// Label returns a printable identification of the step.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Builtin != "" {
		return s.Builtin
	}
	if i := strings.IndexByte(s.Run, '\n'); i > 0 {
		return s.Run[:i]
	}
	return s.Run
}

// Hooks are the post-run blocks. Always hooks execute unconditionally after
// any outcome; Success and Failure only on the matching outcome.
type Hooks struct {
	Always  []Step `yaml:"always"`
	Success []Step `yaml:"success"`
	Failure []Step `yaml:"failure"`
}

// Timeout returns the run's wall-clock bound.
func (p *Pipeline) Timeout() time.Duration {
	if p.TimeoutMinutes <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(p.TimeoutMinutes) * time.Minute
}

// Builtin step names understood by the engine.
var builtins = map[string]bool{
	"env-setup":   true,
	"task-test":   true,
	"task-perf":   true,
	"db-reset":    true,
	"db-prune":    true,
	"stack-up":    true,
	"stack-down":  true,
	"wait-ready":  true,
	"image-build": true,
	"image-tag":   true,
	"archive":     true,
	"prune":       true,
}

// Parse reads a pipeline definition and validates it.
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid pipeline YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a pipeline from path. An empty path tries DefaultFileName and
// falls back to the embedded default definition.
func Load(path string) (*Pipeline, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		} else {
			return Parse(defaultDefinition)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks structural integrity: named stages, each step exactly one
// of run/builtin, known builtins, parseable shell snippets.
func (p *Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return fmt.Errorf("pipeline defines no stages")
	}

	seen := map[string]bool{}
	for i, stage := range p.Stages {
		if stage.Name == "" {
			return fmt.Errorf("stage %d has no name", i)
		}
		if seen[stage.Name] {
			return fmt.Errorf("duplicate stage name %q", stage.Name)
		}
		seen[stage.Name] = true

		if len(stage.Steps) == 0 {
			return fmt.Errorf("stage %q has no steps", stage.Name)
		}
		if stage.When != "" {
			if _, err := parseWhen(stage.When); err != nil {
				return fmt.Errorf("stage %q: %w", stage.Name, err)
			}
		}

		for _, step := range stage.Steps {
			if err := validateStep(stage.Name, step); err != nil {
				return err
			}
		}
		for _, hookSteps := range [][]Step{stage.Post.Always, stage.Post.Success, stage.Post.Failure} {
			for _, step := range hookSteps {
				if err := validateStep(stage.Name, step); err != nil {
					return err
				}
			}
		}
	}

	for _, hookSteps := range [][]Step{p.Post.Always, p.Post.Success, p.Post.Failure} {
		for _, step := range hookSteps {
			if err := validateStep("post", step); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateStep(stageName string, step Step) error {
	switch {
	case step.Run == "" && step.Builtin == "":
		return fmt.Errorf("stage %q: step %q has neither run nor builtin", stageName, step.Label())
	case step.Run != "" && step.Builtin != "":
		return fmt.Errorf("stage %q: step %q has both run and builtin", stageName, step.Label())
	case step.Builtin != "" && !builtins[step.Builtin]:
		return fmt.Errorf("stage %q: unknown builtin %q", stageName, step.Builtin)
	case step.Run != "":
		if err := shell.Validate(step.Run); err != nil {
			return fmt.Errorf("stage %q: %w", stageName, err)
		}
	}
	return nil
}

// whenClause is the single supported stage condition: branch equality.
type whenClause struct {
	Branch string
}

func parseWhen(expr string) (whenClause, error) {
	parts := strings.SplitN(expr, "==", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "branch" {
		return whenClause{}, fmt.Errorf("unsupported when clause %q (expected \"branch == <name>\")", expr)
	}
	return whenClause{Branch: strings.TrimSpace(parts[1])}, nil
}
