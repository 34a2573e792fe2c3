package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/bootstrap"
	"gantry/pkg/config"
)

// envSetupCmd represents the env setup command
var envSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the interpreter environment and install dependencies",
	Long: `Provision the interpreter environment and install dependencies.

The configured interpreter candidates are probed in order and the first
working one is used to create the virtual environment (when it does not
already exist). Dependencies from the requirements manifest are then
installed into it.

Example:
  gantryctl env setup`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		env, err := bootstrap.Setup(context.Background(), cfg.Interpreters, cfg.VenvDir, cfg.RequirementsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Environment setup failed: %v\n", err)
			os.Exit(1)
		}

		if env.Created {
			fmt.Printf("Created environment at %s using %s\n", env.Root, env.Interpreter)
		} else {
			fmt.Printf("Reusing environment at %s\n", env.Root)
		}
		fmt.Println("Environment is ready")
	},
}

func init() {
	envCmd.AddCommand(envSetupCmd)
}
