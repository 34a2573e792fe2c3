// Package db holds the versioned SQL migrations for the appointment schema.
package db

import "embed"

// Migrations contains the schema migration files, embedded so a single
// gantryctl binary can reset the database without a source checkout.
//
//go:embed migrations
var Migrations embed.FS
