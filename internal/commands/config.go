package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tock/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tock config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings to ~/.tock/config.yaml,
or to $TOCK_CONFIG when it is set. An existing file is kept unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		force, _ := cmd.Flags().GetBool("force")

		path, err := config.Path()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		if _, err := os.Stat(path); err == nil && !force {
			fmt.Fprintf(out, "Error: config file already exists at %s (use --force to overwrite)\n", path)
			return
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		defaults, err := config.Defaults()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		if err := config.Save(path, defaults); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(out, "✅ Wrote default config to %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings tock is using",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		path, err := config.Path()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}

		fmt.Fprintf(out, "Config file:   %s\n", path)
		fmt.Fprintf(out, "Database:      %s\n", cfg.DBPath)
		fmt.Fprintf(out, "Log file:      %s\n", cfg.LogFile)
		fmt.Fprintf(out, "Log level:     %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "Tick interval: %s\n", cfg.TickInterval)
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
