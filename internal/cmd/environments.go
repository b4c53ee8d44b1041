package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/settings"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var environmentsSettings string

// environmentsCmd lists the environments declared in the settings file.
var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"envs"},
	Short:   "List environments declared in the settings file",
	Long:    `List all environments declared in the settings file, in declaration order.`,
	RunE:    runEnvironments,
}

func init() {
	environmentsCmd.Flags().StringVarP(&environmentsSettings, "settings", "s", "", "Settings file (default: envs.yaml at the project root)")

	rootCmd.AddCommand(environmentsCmd)
}

func runEnvironments(cmd *cobra.Command, args []string) error {
	settingsFile := environmentsSettings
	if settingsFile == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		settingsFile = cfg.SettingsFile
	}

	doc, err := settings.Load(settingsFile)
	if err != nil {
		return err
	}

	names := doc.EnvNames()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No environments declared")
		return nil
	}

	ui.Blue.Println("Declared environments:")
	for _, name := range names {
		overrides := len(doc.Environments[name])
		switch overrides {
		case 0:
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (defaults only)\n", name)
		case 1:
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (1 override)\n", name)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%d overrides)\n", name, overrides)
		}
	}

	return nil
}
