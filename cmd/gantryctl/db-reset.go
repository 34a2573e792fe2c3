package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/db"
	"gantry/pkg/dbstate"
)

// dbResetCmd represents the db reset command
var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the database schema to a pristine state",
	Long: `Reset the database schema to a pristine state.

Rolls back every migration and re-applies them. The database connection is
verified before anything destructive happens. Equivalent to running the
clean wrapper task.

Example:
  gantryctl db reset`,
	Run: func(cmd *cobra.Command, args []string) {
		dbURL := db.URL()
		if dbURL == "" {
			fmt.Fprintln(os.Stderr, "error: DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		if err := dbstate.Ping(dbURL); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		if err := dbstate.Reset(dbURL); err != nil {
			fmt.Println("Reset failed:", err)
			os.Exit(1)
		}
	},
}

// dbPruneCmd represents the db prune command
var dbPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove data created during a test run",
	Long: `Remove data created during a test run.

Deletes all appointment rows unless TEST_DB_PRESERVE asks to keep them.

Example:
  gantryctl db prune`,
	Run: func(cmd *cobra.Command, args []string) {
		conn, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		deleted, err := dbstate.PruneTestData(conn)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("Pruned %d row(s)\n", deleted)
	},
}

func init() {
	dbCmd.AddCommand(dbResetCmd)
	dbCmd.AddCommand(dbPruneCmd)
}
