// Package cmd provides the CLI commands for stevedore.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stevedore",
	Short: "Cargo manifests for Kubernetes",
	Long: `stevedore - cargo manifests for Kubernetes

Render per-environment Kubernetes manifests from one shared template and
a layered settings file (shared defaults + per-environment overrides).

RENDER COMMANDS
  render                Render manifests for the selected environments
    --env, -e <name>    Environment to render (repeatable; default: all)
    --outdir, -o <dir>  Output directory (default: build/)
    --dry-run, -n       Print rendered manifests instead of writing files
  environments          List environments declared in the settings file

PROJECT COMMANDS
  init                  Scaffold a starter envs.yaml and template
  snapshots             List saved output snapshots
  rollback <name>       Restore a previous output snapshot

MAINTENANCE
  update                Update stevedore to the latest version`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("stevedore version {{.Version}}\n")
}
