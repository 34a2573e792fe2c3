package task

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gantry/pkg/config"
)

func TestTaskString(t *testing.T) {
	cases := map[string]Task{
		"test":        TaskTest,
		"performance": TaskPerformance,
		"clean":       TaskClean,
	}
	for name, want := range cases {
		got, err := TaskString(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := TaskString("deploy")
	assert.Error(t, err)
}

func TestDefaultPerfParams(t *testing.T) {
	p := DefaultPerfParams()
	assert.Equal(t, 200, p.Users)
	assert.Equal(t, 3, p.Rounds)
	assert.Equal(t, 1000, p.Batch)
}

func TestPerfParamsEnv(t *testing.T) {
	p := PerfParams{Users: 50, Rounds: 7, Batch: 250}
	assert.Equal(t, []string{
		"PERF_USERS=50",
		"PERF_ROUNDS=7",
		"PERF_BATCH=250",
	}, p.Env())
}

func testConfig(testCmd, perfCmd string) *config.Config {
	cfg := config.Load()
	cfg.TestCommand = testCmd
	cfg.PerfCommand = perfCmd
	return cfg
}

func TestRunnerPerformancePropagatesParams(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(testConfig("true", `echo "$PERF_USERS $PERF_ROUNDS $PERF_BATCH"`))
	r.Stdout = &out
	r.Stderr = &out
	r.Perf = PerfParams{Users: 42, Rounds: 2, Batch: 10}

	require.NoError(t, r.Run(context.Background(), TaskPerformance))
	assert.Contains(t, out.String(), "42 2 10")
}

func TestRunnerTestClearsPreserveFlag(t *testing.T) {
	t.Setenv("TEST_DB_PRESERVE", "1")

	var out bytes.Buffer
	r := NewRunner(testConfig(`echo "preserve=[$TEST_DB_PRESERVE]"`, "true"))
	r.Stdout = &out
	r.Stderr = &out

	require.NoError(t, r.Run(context.Background(), TaskTest))
	assert.Contains(t, out.String(), "preserve=[]")
}

func TestRunnerTestKeepsPreserveFlagWhenAsked(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(testConfig(`echo "preserve=[$TEST_DB_PRESERVE]"`, "true"))
	r.Stdout = &out
	r.Stderr = &out
	r.Preserve = true

	require.NoError(t, r.Run(context.Background(), TaskTest))
	assert.Contains(t, out.String(), "preserve=[1]")
}

func TestRunnerCleanFailsFastWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	r := NewRunner(testConfig("true", "true"))
	err := r.Run(context.Background(), TaskClean)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
