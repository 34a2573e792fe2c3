package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandidate(t *testing.T) {
	c := ParseCandidate("py -3")
	assert.Equal(t, "py", c.Command)
	assert.Equal(t, []string{"-3"}, c.Args)
	assert.Equal(t, "py -3", c.String())

	c = ParseCandidate("python3")
	assert.Equal(t, "python3", c.Command)
	assert.Empty(t, c.Args)

	c = ParseCandidate("   ")
	assert.Equal(t, "", c.Command)
}

func TestProbeReturnsFirstWorkingCandidate(t *testing.T) {
	// "true" accepts any arguments and exits 0, standing in for a working
	// interpreter. The bogus entries before it must be skipped.
	cand, err := Probe(context.Background(), []string{
		"definitely-not-installed-interpreter",
		"/nonexistent/path/python3",
		"true",
		"false",
	})
	require.NoError(t, err)
	assert.Equal(t, "true", cand.Command)
}

func TestProbeExhaustsCandidates(t *testing.T) {
	_, err := Probe(context.Background(), []string{
		"definitely-not-installed-interpreter",
		"false",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInterpreter))
}

func TestProbeEmptyList(t *testing.T) {
	_, err := Probe(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoInterpreter))
}

func TestSetupFailsWithoutInterpreter(t *testing.T) {
	_, err := Setup(context.Background(), []string{"definitely-not-installed-interpreter"}, t.TempDir(), "")
	assert.True(t, errors.Is(err, ErrNoInterpreter))
}

func TestSetupMissingManifest(t *testing.T) {
	// An existing venv dir skips creation; the missing manifest must then
	// abort before any install attempt.
	dir := t.TempDir()
	_, err := Setup(context.Background(), []string{"true"}, dir, filepath.Join(dir, "requirements.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency manifest")
}

func TestEnvPaths(t *testing.T) {
	env := Env{Root: "/opt/envs/svc"}
	assert.Contains(t, env.Python(), "python")
	assert.Contains(t, env.Pip(), "pip")
}
