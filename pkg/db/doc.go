// Package db provides database connection utilities for gantry.
//
// gantry only touches the database for two things: resetting schema state
// (the clean task) and pruning per-test data between runs. This package
// centralizes the GORM connection used for the latter.
package db
