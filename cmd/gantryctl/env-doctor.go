package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/bootstrap"
	"gantry/pkg/config"
)

// envDoctorCmd represents the env doctor command
var envDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the test execution environment",
	Long: `Diagnose the test execution environment without changing it.

Probes the interpreter candidates, and checks whether the virtual
environment and the dependency manifest are present.

Example:
  gantryctl env doctor`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		healthy := true

		fmt.Println("Probing interpreter candidates...")
		cand, err := bootstrap.Probe(context.Background(), cfg.Interpreters)
		if err != nil {
			fmt.Println("No usable interpreter found")
			healthy = false
		} else {
			fmt.Printf("Would use: %s\n", cand)
		}

		if _, err := os.Stat(cfg.VenvDir); err != nil {
			fmt.Printf("Environment %s: missing (run 'gantryctl env setup')\n", cfg.VenvDir)
		} else {
			fmt.Printf("Environment %s: present\n", cfg.VenvDir)
		}

		if _, err := os.Stat(cfg.RequirementsFile); err != nil {
			fmt.Printf("Manifest %s: missing\n", cfg.RequirementsFile)
			healthy = false
		} else {
			fmt.Printf("Manifest %s: present\n", cfg.RequirementsFile)
		}

		if !healthy {
			os.Exit(1)
		}
		fmt.Println("Environment looks healthy")
	},
}

func init() {
	envCmd.AddCommand(envDoctorCmd)
}
