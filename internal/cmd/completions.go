package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/settings"
	"github.com/cameronsjo/stevedore/internal/snapshot"
)

// completeEnvNames completes environment names from the settings file.
func completeEnvNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	doc, err := settings.Load(cfg.SettingsFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range doc.EnvNames() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeSnapshotNames completes snapshot names for rollback.
func completeSnapshotNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Don't complete if we already have an argument
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	snapshots, err := snapshot.List(cfg.SnapshotsDir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, snap := range snapshots {
		if strings.HasPrefix(snap.Name, toComplete) {
			names = append(names, snap.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers all dynamic completions for commands.
// This is called after all commands are defined.
func registerCompletions() {
	rollbackCmd.ValidArgsFunction = completeSnapshotNames

	if err := renderCmd.RegisterFlagCompletionFunc("env", completeEnvNames); err != nil {
		// Silently ignore - completions are optional
		_ = err
	}
}

// init registers completions after all commands are set up.
func init() {
	// cobra.OnInitialize runs after every command's init(), so all
	// commands exist by the time completions are attached.
	cobra.OnInitialize(registerCompletions)
}
