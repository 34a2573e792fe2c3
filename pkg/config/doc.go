// Package config provides configuration management for gantry.
//
// Settings are loaded from defaults, then an optional gantry.yml file, then
// GANTRY_* environment variables. Later sources win, and the source of every
// value is tracked so `gantryctl config show` can report where each setting
// came from.
//
// # Configuration Sources
//
//   - Built-in defaults
//   - gantry.yml (working directory, then /etc/gantry)
//   - GANTRY_* environment variables
//
// # Key Settings
//
//   - test_command / perf_command: test runner command templates
//   - interpreters: ordered interpreter candidates for env setup
//   - compose_file / compose_project: integration test stack
//   - image_name / image_registry / main_branch: image build and tagging
package config
