//go:build !embed_migrations

package dbstate

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultMigrationsPath = "db/migrations"

// MigrationsPath returns the migrations directory, overridable by
// GANTRY_MIGRATIONS_DIR for out-of-tree checkouts.
func MigrationsPath() string {
	if dir := os.Getenv("GANTRY_MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return defaultMigrationsPath
}

func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	path := MigrationsPath()
	fmt.Printf("Running migrations from file://%s\n", path)
	return migrate.New("file://"+path, dbURL)
}
