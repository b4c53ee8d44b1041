package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/lock"
	"github.com/cameronsjo/stevedore/internal/snapshot"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var rollbackOutdir string

// snapshotsCmd lists saved output snapshots.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved output snapshots",
	Long:  `List snapshots of the output directory saved before previous renders.`,
	RunE:  runSnapshots,
}

// rollbackCmd restores a previous output snapshot.
var rollbackCmd = &cobra.Command{
	Use:   "rollback <snapshot>",
	Short: "Restore a previous output snapshot",
	Long: `Replace the output directory with the contents of a saved snapshot.

Use 'stevedore snapshots' to list the available snapshot names.`,
	Args: cobra.ExactArgs(1),
	RunE: runRollback,
}

func init() {
	rollbackCmd.Flags().StringVarP(&rollbackOutdir, "outdir", "o", "", "Output directory to restore into (default: build/ under the project root)")

	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(rollbackCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	snapshots, err := snapshot.List(cfg.SnapshotsDir())
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snapshots found")
		return nil
	}

	ui.Blue.Println("Available snapshots (newest first):")
	for _, snap := range snapshots {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%d files, %s)\n",
			snap.Name, snap.FileCount, snap.Created.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func runRollback(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	outDir := rollbackOutdir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	name := args[0]

	err = lock.WithLock(cfg.Root, "render", func() error {
		return snapshot.Restore(cfg.SnapshotsDir(), name, outDir)
	})
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	ui.Success("Restored %s into %s", name, outDir)
	return nil
}
