package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	assert.Equal(t, ".venv", cfg.VenvDir)
	assert.Equal(t, "requirements.txt", cfg.RequirementsFile)
	assert.Equal(t, "main", cfg.MainBranch)
	assert.Equal(t, 60, cfg.PipelineTimeoutMinutes)
	assert.NotEmpty(t, cfg.Interpreters)

	for _, attr := range cfg.Attributes() {
		assert.Equal(t, "defaults", attr.Source, "attribute %s", attr.Name)
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gantry.yml")
	content := `
venv_dir: /opt/envs/service
main_branch: master
pipeline_timeout_minutes: 30
interpreters:
  - /usr/bin/python3.11
  - python3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := defaults()
	require.NoError(t, cfg.applyFile(path))

	assert.Equal(t, "/opt/envs/service", cfg.VenvDir)
	assert.Equal(t, "master", cfg.MainBranch)
	assert.Equal(t, 30, cfg.PipelineTimeoutMinutes)
	assert.Equal(t, []string{"/usr/bin/python3.11", "python3"}, cfg.Interpreters)

	// Values from the file are attributed to the file; untouched values
	// keep their default source.
	sources := map[string]string{}
	for _, attr := range cfg.Attributes() {
		sources[attr.Name] = attr.Source
	}
	assert.Equal(t, path, sources["venv_dir"])
	assert.Equal(t, path, sources["main_branch"])
	assert.Equal(t, "defaults", sources["compose_file"])
}

func TestApplyFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gantry.yml")
	require.NoError(t, os.WriteFile(path, []byte("venv_dir: [unclosed"), 0o644))

	cfg := defaults()
	err := cfg.applyFile(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GANTRY_VENV_DIR", "/tmp/venv-override")
	t.Setenv("GANTRY_MAIN_BRANCH", "trunk")
	t.Setenv("GANTRY_PIPELINE_TIMEOUT", "15")

	cfg := defaults()
	cfg.applyEnv()

	assert.Equal(t, "/tmp/venv-override", cfg.VenvDir)
	assert.Equal(t, "trunk", cfg.MainBranch)
	assert.Equal(t, 15, cfg.PipelineTimeoutMinutes)

	sources := map[string]string{}
	for _, attr := range cfg.Attributes() {
		sources[attr.Name] = attr.Source
	}
	assert.Equal(t, "environment", sources["venv_dir"])
}

func TestApplyEnvIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("GANTRY_PIPELINE_TIMEOUT", "not-a-number")

	cfg := defaults()
	cfg.applyEnv()

	assert.Equal(t, 60, cfg.PipelineTimeoutMinutes)
}
