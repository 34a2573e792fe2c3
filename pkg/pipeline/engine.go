package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gantry/pkg/artifact"
	"gantry/pkg/bootstrap"
	"gantry/pkg/config"
	"gantry/pkg/db"
	"gantry/pkg/dbstate"
	"gantry/pkg/history"
	"gantry/pkg/report"
	"gantry/pkg/shell"
	"gantry/pkg/stack"
	"gantry/pkg/task"
)

// hookGrace bounds terminal-hook execution after the run context is spent.
const hookGrace = 10 * time.Minute

// StageResult is the outcome of one stage.
type StageResult struct {
	Name     string
	Status   StageStatus
	Duration time.Duration
	Err      error
}

// Result is the outcome of a whole run.
type Result struct {
	RunID      string
	Status     StageStatus
	Stages     []StageResult
	Duration   time.Duration
	ArchiveDir string
}

// Engine executes pipelines: stages strictly in order, stop on first
// failure, terminal hooks always.
type Engine struct {
	Config  *config.Config
	History *history.Store
	Out     io.Writer

	branch   string
	builtRef string
	archived string
}

// NewEngine builds an engine. hist may be nil (history disabled).
func NewEngine(cfg *config.Config, hist *history.Store) *Engine {
	return &Engine{Config: cfg, History: hist, Out: os.Stdout}
}

// Run executes the pipeline under its wall-clock timeout. The returned
// error, if any, reflects the first stage failure or the timeout; terminal
// hooks have already run by the time Run returns.
func (e *Engine) Run(ctx context.Context, p *Pipeline) (*Result, error) {
	started := time.Now()
	result := &Result{
		RunID:  "run-" + started.Format("20060102-150405"),
		Status: StatusRunning,
	}

	e.branch = stack.CurrentBranch(ctx)

	runCtx, cancel := context.WithTimeout(ctx, p.Timeout())
	defer cancel()

	fmt.Fprintf(e.Out, "=== Pipeline %s (%s, branch %q, timeout %s)\n",
		p.Name, result.RunID, e.branch, p.Timeout())

	var failure error
	for _, stage := range p.Stages {
		sr := e.runStage(runCtx, p, stage, failure != nil)
		result.Stages = append(result.Stages, sr)
		if sr.Status == StatusFailed && failure == nil {
			failure = fmt.Errorf("stage %q failed: %w", stage.Name, sr.Err)
		}
		e.record(result.RunID, stage.Name, sr.Status.String(), sr.Duration, sr.Err)
	}

	if runCtx.Err() != nil && failure == nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			failure = fmt.Errorf("pipeline timed out after %s", p.Timeout())
		} else {
			failure = fmt.Errorf("pipeline cancelled before completion")
		}
	}

	if failure != nil {
		result.Status = StatusFailed
	} else {
		result.Status = StatusSucceeded
	}

	// Terminal hooks run unconditionally, on a fresh context: the run
	// context may already be expired, and cleanup must still happen.
	hookCtx, hookCancel := context.WithTimeout(context.Background(), hookGrace)
	defer hookCancel()

	if failure == nil {
		e.runHookSteps(hookCtx, p, p.Post.Success, "post-success")
	} else {
		e.runHookSteps(hookCtx, p, p.Post.Failure, "post-failure")
	}
	e.runHookSteps(hookCtx, p, p.Post.Always, "post-always")

	result.Duration = time.Since(started)
	result.ArchiveDir = e.archived
	e.record(result.RunID, "pipeline", result.Status.String(), result.Duration, failure)

	fmt.Fprintf(e.Out, "=== Pipeline %s %s in %s\n", p.Name, result.Status, result.Duration.Round(time.Millisecond))
	return result, failure
}

func (e *Engine) runStage(ctx context.Context, p *Pipeline, stage Stage, alreadyFailed bool) StageResult {
	sr := StageResult{Name: stage.Name, Status: StatusSkipped}

	switch {
	case !stage.IsEnabled():
		fmt.Fprintf(e.Out, "--- Stage %s: skipped (disabled)\n", stage.Name)
		return sr
	case alreadyFailed:
		fmt.Fprintf(e.Out, "--- Stage %s: skipped (earlier failure)\n", stage.Name)
		return sr
	case ctx.Err() != nil:
		fmt.Fprintf(e.Out, "--- Stage %s: skipped (run aborted)\n", stage.Name)
		return sr
	}

	if stage.When != "" {
		clause, err := parseWhen(stage.When)
		if err != nil {
			sr.Status = StatusFailed
			sr.Err = err
			return sr
		}
		if clause.Branch != e.branch {
			fmt.Fprintf(e.Out, "--- Stage %s: skipped (branch %q, wants %q)\n", stage.Name, e.branch, clause.Branch)
			return sr
		}
	}

	fmt.Fprintf(e.Out, "--- Stage %s\n", stage.Name)
	started := time.Now()
	sr.Status = StatusSucceeded

	for _, step := range stage.Steps {
		if err := e.runStep(ctx, p, step); err != nil {
			fmt.Fprintf(e.Out, "Step %q failed: %v\n", step.Label(), err)
			sr.Status = StatusFailed
			sr.Err = err
			break
		}
	}

	// Stage-level hooks run whatever the outcome; their errors are logged
	// and never alter the stage status.
	hookCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		hookCtx, cancel = context.WithTimeout(context.Background(), hookGrace)
		defer cancel()
	}
	if sr.Status == StatusSucceeded {
		e.runHookSteps(hookCtx, p, stage.Post.Success, stage.Name+"/post-success")
	} else {
		e.runHookSteps(hookCtx, p, stage.Post.Failure, stage.Name+"/post-failure")
	}
	e.runHookSteps(hookCtx, p, stage.Post.Always, stage.Name+"/post-always")

	sr.Duration = time.Since(started)
	return sr
}

// runHookSteps executes hook steps, tolerating individual failures: each is
// logged and the next hook still runs. Stack teardown in a hook is fully
// best-effort and never even logs as a hook failure.
func (e *Engine) runHookSteps(ctx context.Context, p *Pipeline, steps []Step, label string) {
	for _, step := range steps {
		if step.Builtin == "stack-down" {
			e.stack().DownBestEffort(ctx)
			continue
		}
		if err := e.runStep(ctx, p, step); err != nil {
			fmt.Fprintf(e.Out, "Warning: %s hook %q failed: %v\n", label, step.Label(), err)
		}
	}
}

func (e *Engine) runStep(ctx context.Context, p *Pipeline, step Step) error {
	if step.Builtin != "" {
		return e.runBuiltin(ctx, step.Builtin)
	}

	env := make([]string, 0, len(p.Env)+len(step.Env))
	for k, v := range p.Env {
		env = append(env, k+"="+v)
	}
	for k, v := range step.Env {
		env = append(env, k+"="+v)
	}

	return shell.Run(ctx, step.Run, shell.Options{
		Env:    env,
		Stdout: e.Out,
		Stderr: e.Out,
	})
}

func (e *Engine) runBuiltin(ctx context.Context, name string) error {
	cfg := e.Config

	switch name {
	case "env-setup":
		_, err := bootstrap.Setup(ctx, cfg.Interpreters, cfg.VenvDir, cfg.RequirementsFile)
		return err

	case "task-test":
		return task.NewRunner(cfg).Run(ctx, task.TaskTest)

	case "task-perf":
		return task.NewRunner(cfg).Run(ctx, task.TaskPerformance)

	case "db-reset":
		return task.NewRunner(cfg).Run(ctx, task.TaskClean)

	case "db-prune":
		conn, err := db.Connect(db.Config{})
		if err != nil {
			return err
		}
		deleted, err := dbstate.PruneTestData(conn)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.Out, "Pruned %d test row(s)\n", deleted)
		return nil

	case "stack-up":
		return e.stack().Up(ctx)

	case "stack-down":
		return e.stack().Down(ctx)

	case "wait-ready":
		return stack.WaitReady(ctx, cfg.HealthURL, 90)

	case "image-build":
		tag := time.Now().Format("20060102-150405")
		if err := stack.BuildImage(ctx, cfg.ImageName, tag, "."); err != nil {
			return err
		}
		e.builtRef = cfg.ImageName + ":" + tag
		return nil

	case "image-tag":
		if e.builtRef == "" {
			return errors.New("no image was built in this run")
		}
		dst := cfg.ImageName + ":latest"
		if cfg.ImageRegistry != "" {
			dst = cfg.ImageRegistry + "/" + dst
		}
		return stack.TagImage(ctx, e.builtRef, dst)

	case "archive":
		dest, err := artifact.Archive(cfg.ReportsDir, cfg.ArchiveDir, nil)
		if err != nil {
			return err
		}
		e.archived = dest
		if _, err := report.Render(dest); err != nil {
			fmt.Fprintf(e.Out, "Warning: summary rendering failed: %v\n", err)
		}
		return nil

	case "prune":
		stack.Prune(ctx)
		return nil

	default:
		return fmt.Errorf("unknown builtin %q", name)
	}
}

func (e *Engine) stack() stack.Stack {
	return stack.Stack{
		ComposeFile: e.Config.ComposeFile,
		Project:     e.Config.ComposeProject,
	}
}

// record saves a run event, best-effort.
func (e *Engine) record(runID, stage, status string, d time.Duration, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	saveErr := e.History.Save(history.Event{
		RunID:    runID,
		Stage:    stage,
		Status:   status,
		Duration: d,
		Message:  msg,
		Detail:   map[string]string{"branch": e.branch},
	})
	if saveErr != nil {
		fmt.Fprintf(e.Out, "Warning: failed to record run event: %v\n", saveErr)
	}
}
