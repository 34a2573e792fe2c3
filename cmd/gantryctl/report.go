package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage test run reports",
	Long:  `Archive, render and serve test run reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'report' requires a subcommand (archive, render, serve)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// latestArchiveDir returns the newest run directory under the archive root.
// Run directories are timestamped, so lexicographic order is creation order.
func latestArchiveDir(cfg *config.Config) (string, error) {
	entries, err := os.ReadDir(cfg.ArchiveDir)
	if err != nil {
		return "", fmt.Errorf("failed to read archive directory %s: %w", cfg.ArchiveDir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	if len(dirs) == 0 {
		return "", fmt.Errorf("no archived runs under %s", cfg.ArchiveDir)
	}

	sort.Strings(dirs)
	return filepath.Join(cfg.ArchiveDir, dirs[len(dirs)-1]), nil
}
