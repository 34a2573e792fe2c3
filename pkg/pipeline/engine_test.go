package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantry/pkg/config"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	cfg := config.Load()
	e := NewEngine(cfg, nil)
	var out bytes.Buffer
	e.Out = &out
	return e, &out
}

func mustParse(t *testing.T, yml string) *Pipeline {
	t.Helper()
	p, err := Parse([]byte(yml))
	require.NoError(t, err)
	return p
}

func stageStatuses(r *Result) map[string]StageStatus {
	statuses := map[string]StageStatus{}
	for _, s := range r.Stages {
		statuses[s.Name] = s.Status
	}
	return statuses
}

func TestEngineRunsStagesInOrder(t *testing.T) {
	e, out := newTestEngine(t)

	p := mustParse(t, `
name: ordered
stages:
  - name: one
    steps: [{run: "echo first"}]
  - name: two
    steps: [{run: "echo second"}]
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, result.Status)
	text := out.String()
	assert.Less(t, bytes.Index([]byte(text), []byte("first")), bytes.Index([]byte(text), []byte("second")))
}

func TestEngineStopsOnFirstFailure(t *testing.T) {
	e, _ := newTestEngine(t)

	p := mustParse(t, `
name: failing
stages:
  - name: ok
    steps: [{run: "true"}]
  - name: bad
    steps: [{run: "exit 1"}]
  - name: never
    steps: [{run: "echo unreachable"}]
`)

	result, err := e.Run(context.Background(), p)
	require.Error(t, err)
	assert.ErrorContains(t, err, `stage "bad" failed`)

	statuses := stageStatuses(result)
	assert.Equal(t, StatusSucceeded, statuses["ok"])
	assert.Equal(t, StatusFailed, statuses["bad"])
	assert.Equal(t, StatusSkipped, statuses["never"])
	assert.Equal(t, StatusFailed, result.Status)
}

func TestEngineTerminalHooksRunAfterFailure(t *testing.T) {
	e, _ := newTestEngine(t)

	marker := filepath.Join(t.TempDir(), "always-ran")
	p := mustParse(t, `
name: hooked
env:
  MARKER: `+marker+`
stages:
  - name: bad
    steps: [{run: "exit 7"}]
post:
  always:
    - run: touch "$MARKER"
`)

	_, err := e.Run(context.Background(), p)
	require.Error(t, err)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr, "post-always hook must run after a failed stage")
}

func TestEngineHookFailureIsTolerated(t *testing.T) {
	e, out := newTestEngine(t)

	p := mustParse(t, `
name: tolerant
stages:
  - name: ok
    steps: [{run: "true"}]
post:
  always:
    - run: "exit 9"
    - run: "echo still-here"
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err, "hook failures must not change the run result")
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Contains(t, out.String(), "still-here")
	assert.Contains(t, out.String(), "Warning")
}

func TestEngineStagePostAlwaysRunsOnFailure(t *testing.T) {
	e, _ := newTestEngine(t)

	marker := filepath.Join(t.TempDir(), "stage-cleanup")
	p := mustParse(t, `
name: stage-hooks
env:
  MARKER: `+marker+`
stages:
  - name: integration
    steps: [{run: "exit 1"}]
    post:
      always:
        - run: touch "$MARKER"
`)

	_, err := e.Run(context.Background(), p)
	require.Error(t, err)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr, "stage post-always must run when the stage fails")
}

func TestEngineFailureHooksSelected(t *testing.T) {
	e, _ := newTestEngine(t)

	dir := t.TempDir()
	p := mustParse(t, `
name: selection
env:
  DIR: `+dir+`
stages:
  - name: bad
    steps: [{run: "exit 1"}]
post:
  success:
    - run: touch "$DIR/success"
  failure:
    - run: touch "$DIR/failure"
`)

	_, err := e.Run(context.Background(), p)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "failure"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "success"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEngineSkipsDisabledStages(t *testing.T) {
	e, _ := newTestEngine(t)

	p := mustParse(t, `
name: disabled
stages:
  - name: lint
    enabled: false
    steps: [{run: "exit 1"}]
  - name: rest
    steps: [{run: "true"}]
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err)

	statuses := stageStatuses(result)
	assert.Equal(t, StatusSkipped, statuses["lint"])
	assert.Equal(t, StatusSucceeded, statuses["rest"])
}

func TestEngineBranchGate(t *testing.T) {
	t.Setenv("GIT_BRANCH", "origin/feature-x")

	e, _ := newTestEngine(t)
	p := mustParse(t, `
name: gated
stages:
  - name: tag
    when: branch == main
    steps: [{run: "exit 1"}]
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, stageStatuses(result)["tag"])
}

func TestEngineBranchGateMatches(t *testing.T) {
	t.Setenv("GIT_BRANCH", "origin/main")

	e, out := newTestEngine(t)
	p := mustParse(t, `
name: gated
stages:
  - name: tag
    when: branch == main
    steps: [{run: "echo tagged"}]
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, stageStatuses(result)["tag"])
	assert.Contains(t, out.String(), "tagged")
}

func TestEngineCancelledContext(t *testing.T) {
	e, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := mustParse(t, `
name: cancelled
stages:
  - name: any
    steps: [{run: "echo nope"}]
`)

	result, err := e.Run(ctx, p)
	require.Error(t, err)
	assert.ErrorContains(t, err, "cancelled")
	assert.NotContains(t, err.Error(), "timed out")
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, StatusSkipped, stageStatuses(result)["any"])
}

func TestEngineTerminalHooksRunAfterContextExpiry(t *testing.T) {
	e, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	marker := filepath.Join(t.TempDir(), "cleanup-ran")
	p := mustParse(t, `
name: expired
env:
  MARKER: `+marker+`
stages:
  - name: any
    steps: [{run: "echo nope"}]
post:
  always:
    - run: touch "$MARKER"
`)

	result, err := e.Run(ctx, p)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr, "post-always hooks must run even when the run context is already done")
}

func TestEngineStageHooksRunAfterMidRunCancellation(t *testing.T) {
	e, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	marker := filepath.Join(t.TempDir(), "stage-cleanup")
	p := mustParse(t, `
name: interrupted
env:
  MARKER: `+marker+`
stages:
  - name: slow
    steps: [{run: "sleep 5"}]
    post:
      always:
        - run: touch "$MARKER"
`)

	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	result, err := e.Run(ctx, p)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr, "stage post-always must run when the run context expires mid-stage")
}

func TestEngineStackTeardownHookIsBestEffort(t *testing.T) {
	e, out := newTestEngine(t)

	p := mustParse(t, `
name: teardown
stages:
  - name: ok
    steps: [{run: "true"}]
post:
  always:
    - builtin: stack-down
    - run: "echo after-teardown"
`)

	result, err := e.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Contains(t, out.String(), "after-teardown")
	assert.NotContains(t, out.String(), "Warning", "hook teardown must not surface as a hook failure")
}

func TestEngineStepEnvOverridesPipelineEnv(t *testing.T) {
	e, out := newTestEngine(t)

	p := mustParse(t, `
name: env
env:
  WHO: pipeline
stages:
  - name: print
    steps:
      - run: echo "who=$WHO"
        env:
          WHO: step
`)

	_, err := e.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "who=step")
}
