package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gantry/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show gantry configuration attributes and their sources",
	Long: `Show gantry configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources: built-in defaults, the config file and GANTRY_*
environment variables, with later sources winning.

Config file location: ./gantry.yml or /etc/gantry/gantry.yml

Example:
  gantryctl configuration show
  gantryctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(output string) error {
	cfg := config.Load()

	if output == "json" {
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonOutput)
		return nil
	}

	fmt.Print(cfg.FormatText())
	return nil
}
