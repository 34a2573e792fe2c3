package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the gantry config file, looked up in the
	// working directory and then in DefaultConfigPath.
	ConfigFileName    = "gantry.yml"
	DefaultConfigPath = "/etc/gantry"
)

// Config holds all gantry settings. Every field can come from the config
// file or be overridden by a GANTRY_* environment variable.
type Config struct {
	// TestCommand is the command template used to run the regular test subset.
	TestCommand string `yaml:"test_command"`

	// PerfCommand is the command template used to run the performance subset.
	PerfCommand string `yaml:"perf_command"`

	// Interpreters is the ordered candidate list probed during env setup.
	Interpreters []string `yaml:"interpreters"`

	// VenvDir is where the isolated dependency environment is created.
	VenvDir string `yaml:"venv_dir"`

	// RequirementsFile is the dependency manifest installed into the venv.
	RequirementsFile string `yaml:"requirements_file"`

	// ComposeFile and ComposeProject identify the integration test stack.
	ComposeFile    string `yaml:"compose_file"`
	ComposeProject string `yaml:"compose_project"`

	// HealthURL is polled by `gantryctl wait` and by the integration stage.
	HealthURL string `yaml:"health_url"`

	// ImageName is the image built by the pipeline; ImageRegistry is the
	// prefix used when tagging on the main branch.
	ImageName     string `yaml:"image_name"`
	ImageRegistry string `yaml:"image_registry"`

	// MainBranch gates the image tag stage.
	MainBranch string `yaml:"main_branch"`

	// ReportsDir is where the test runner drops junit/coverage files;
	// ArchiveDir is where gantry archives them per run.
	ReportsDir string `yaml:"reports_dir"`
	ArchiveDir string `yaml:"archive_dir"`

	// PipelineTimeoutMinutes bounds a whole pipeline run.
	PipelineTimeoutMinutes int `yaml:"pipeline_timeout_minutes"`

	// sources tracks where each value came from (defaults, file or env)
	sources map[string]string

	configFilePath string
}

// Attribute reports a configuration value together with its source, for
// `gantryctl config show`.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()
	if globalConfig == nil {
		globalConfig = Load()
	}
	return globalConfig
}

// Reset clears the global configuration. Used by tests.
func Reset() {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = nil
}

// Load reads configuration from defaults, then the config file, then the
// environment. Later sources win.
func Load() *Config {
	cfg := defaults()

	path := findConfigFile()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", path, err)
		}
	}
	cfg.applyEnv()

	return cfg
}

func defaults() *Config {
	cfg := &Config{
		TestCommand:            `pytest tests -m "not performance" --junitxml=reports/junit.xml --cov=app --cov-report=xml:reports/coverage.xml`,
		PerfCommand:            `pytest tests/performance --junitxml=reports/junit-perf.xml`,
		Interpreters:           []string{"python3", "python", "/usr/local/bin/python3", "/usr/bin/python3"},
		VenvDir:                ".venv",
		RequirementsFile:       "requirements.txt",
		ComposeFile:            "docker-compose.test.yml",
		ComposeProject:         "gantry-test",
		HealthURL:              "http://localhost:8000/docs",
		ImageName:              "appointment-service",
		ImageRegistry:          "",
		MainBranch:             "main",
		ReportsDir:             "reports",
		ArchiveDir:             "artifacts",
		PipelineTimeoutMinutes: 60,
		sources:                map[string]string{},
	}
	for _, name := range attributeNames {
		cfg.sources[name] = "defaults"
	}
	return cfg
}

var attributeNames = []string{
	"test_command", "perf_command", "interpreters", "venv_dir",
	"requirements_file", "compose_file", "compose_project", "health_url",
	"image_name", "image_registry", "main_branch", "reports_dir",
	"archive_dir", "pipeline_timeout_minutes",
}

func findConfigFile() string {
	candidates := []string{
		ConfigFileName,
		filepath.Join(DefaultConfigPath, ConfigFileName),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Unmarshal into a map first so we can track which keys were present.
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config in %s: %w", path, err)
	}

	for key := range raw {
		c.sources[key] = path
	}
	c.configFilePath = path
	return nil
}

// applyEnv overlays GANTRY_* environment variables onto the config.
func (c *Config) applyEnv() {
	overlay := func(env, name string, set func(string)) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			set(v)
			c.sources[name] = "environment"
		}
	}

	overlay("GANTRY_TEST_COMMAND", "test_command", func(v string) { c.TestCommand = v })
	overlay("GANTRY_PERF_COMMAND", "perf_command", func(v string) { c.PerfCommand = v })
	overlay("GANTRY_VENV_DIR", "venv_dir", func(v string) { c.VenvDir = v })
	overlay("GANTRY_REQUIREMENTS", "requirements_file", func(v string) { c.RequirementsFile = v })
	overlay("GANTRY_COMPOSE_FILE", "compose_file", func(v string) { c.ComposeFile = v })
	overlay("GANTRY_COMPOSE_PROJECT", "compose_project", func(v string) { c.ComposeProject = v })
	overlay("GANTRY_HEALTH_URL", "health_url", func(v string) { c.HealthURL = v })
	overlay("GANTRY_IMAGE_NAME", "image_name", func(v string) { c.ImageName = v })
	overlay("GANTRY_IMAGE_REGISTRY", "image_registry", func(v string) { c.ImageRegistry = v })
	overlay("GANTRY_MAIN_BRANCH", "main_branch", func(v string) { c.MainBranch = v })
	overlay("GANTRY_REPORTS_DIR", "reports_dir", func(v string) { c.ReportsDir = v })
	overlay("GANTRY_ARCHIVE_DIR", "archive_dir", func(v string) { c.ArchiveDir = v })
	overlay("GANTRY_PIPELINE_TIMEOUT", "pipeline_timeout_minutes", func(v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PipelineTimeoutMinutes = n
		}
	})
}

// Attributes lists every configuration value with its source.
func (c *Config) Attributes() []Attribute {
	values := map[string]string{
		"test_command":             c.TestCommand,
		"perf_command":             c.PerfCommand,
		"interpreters":             fmt.Sprintf("%v", c.Interpreters),
		"venv_dir":                 c.VenvDir,
		"requirements_file":        c.RequirementsFile,
		"compose_file":             c.ComposeFile,
		"compose_project":          c.ComposeProject,
		"health_url":               c.HealthURL,
		"image_name":               c.ImageName,
		"image_registry":           c.ImageRegistry,
		"main_branch":              c.MainBranch,
		"reports_dir":              c.ReportsDir,
		"archive_dir":              c.ArchiveDir,
		"pipeline_timeout_minutes": strconv.Itoa(c.PipelineTimeoutMinutes),
	}

	attrs := make([]Attribute, 0, len(attributeNames))
	for _, name := range attributeNames {
		attrs = append(attrs, Attribute{
			Name:   name,
			Value:  values[name],
			Source: c.sources[name],
		})
	}
	return attrs
}

// FilePath returns the config file the settings were loaded from, if any.
func (c *Config) FilePath() string {
	return c.configFilePath
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-28s %-60s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-28s %-60s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-28s %-60s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
