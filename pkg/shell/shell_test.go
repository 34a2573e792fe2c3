package shell

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), `echo hello`, Options{Stdout: &out})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestRunEnvOverlay(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), `echo "$PERF_USERS"`, Options{
		Stdout: &out,
		Env:    []string{"PERF_USERS=500"},
	})
	require.NoError(t, err)
	assert.Equal(t, "500\n", out.String())
}

func TestRunNonZeroExit(t *testing.T) {
	err := Run(context.Background(), `exit 3`, Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, `sleep 30`, Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestRunWorkingDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := Run(context.Background(), `pwd`, Options{Dir: dir, Stdout: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), dir)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(`for f in a b; do echo "$f"; done`))
	assert.Error(t, Validate(`if [ missing then`))
}
