// Package dbstate manages persistent schema state for the test environment.
//
// The clean task performs a full reset: every migration is rolled back and
// then re-applied, which is destructive by design. Callers must check the
// connection preflight (Ping) before invoking Reset.
//
// Test-data isolation is handled separately: unless TEST_DB_PRESERVE=1 is
// set, rows created by a test run are pruned afterwards.
package dbstate
