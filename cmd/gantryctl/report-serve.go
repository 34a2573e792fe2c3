package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
	"gantry/pkg/report"
)

// reportServeCmd represents the report serve command
var reportServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve archived run reports over HTTP",
	Long: `Serve archived run reports over HTTP.

Exposes the archive root as a browsable file tree, with a /healthz
endpoint for liveness checks.

Example:
  gantryctl report serve
  gantryctl report serve --addr :9090`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		addr, _ := cmd.Flags().GetString("addr")

		server := report.NewServer(cfg.ArchiveDir, addr)
		fmt.Printf("Serving %s on %s\n", cfg.ArchiveDir, addr)

		if err := server.ListenAndServe(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	reportCmd.AddCommand(reportServeCmd)
	reportServeCmd.Flags().StringP("addr", "a", ":8080", "Listen address")
}
