// Package main implements gantryctl, the CI orchestration CLI for the
// appointment service.
//
// gantryctl wraps the recurring operational chores of the service's delivery
// flow so that CI jobs and developers run the exact same entry points.
//
// # Architecture
//
// The tool is organized into several packages:
//
//   - pkg/task: test-invocation wrapper (test, performance, clean)
//   - pkg/bootstrap: interpreter probing and virtualenv provisioning
//   - pkg/pipeline: sequential stage engine with terminal hooks
//   - pkg/stack: docker compose stack and image lifecycle
//   - pkg/dbstate: schema resets and migration management
//   - pkg/artifact: JUnit/coverage collection and archiving
//   - pkg/report: run summary rendering and serving
//   - pkg/history: run event persistence
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Provision the test environment
//	gantryctl env setup
//
//	# Run the default test task
//	gantryctl run
//
//	# Run the performance task with overrides
//	gantryctl run performance --users 500 --rounds 5
//
//	# Reset the database schema
//	gantryctl run clean
//
//	# Execute the full pipeline
//	gantryctl pipeline run
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - TEST_DB_PRESERVE: keep seeded test data after a run when set
//   - PERF_USERS, PERF_ROUNDS, PERF_BATCH: performance task parameters
//   - GIT_BRANCH / BRANCH_NAME: branch hint for release gating
//   - GANTRY_LOG_LEVEL: log level (debug, info, warn, error)
package main
