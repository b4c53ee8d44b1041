package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/lock"
	"github.com/cameronsjo/stevedore/internal/output"
	"github.com/cameronsjo/stevedore/internal/render"
	"github.com/cameronsjo/stevedore/internal/settings"
	"github.com/cameronsjo/stevedore/internal/snapshot"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	renderEnvs     []string
	renderSettings string
	renderTemplate string
	renderOutdir   string
	renderDryRun   bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"stow"},
	Short:   "Render manifests for the selected environments",
	Long: `Render the manifest template once per environment, merging each
environment's overrides onto the shared defaults.

Environments are processed in the order given on the command line, or in
the settings file's declaration order when no --env is given. A failing
environment is reported and skipped; the remaining environments still
render, and the exit status is non-zero if any failed.

Examples:
  stevedore render                      # Render every declared environment
  stevedore render -e dev               # Render only 'dev'
  stevedore render -e dev -e prod       # Render 'dev' then 'prod'
  stevedore render -n                   # Dry run - print instead of writing
  stevedore render -o out/manifests     # Write to a custom directory`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringArrayVarP(&renderEnvs, "env", "e", nil, "Environment to render (repeatable; default: all declared environments)")
	renderCmd.Flags().StringVarP(&renderSettings, "settings", "s", "", "Settings file (default: envs.yaml at the project root)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template file (default: templates/deployment.yaml.tmpl)")
	renderCmd.Flags().StringVarP(&renderOutdir, "outdir", "o", "", "Output directory (default: build/ under the project root)")
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "Print rendered manifests to stdout instead of writing files")

	rootCmd.AddCommand(renderCmd)
}

// renderPaths holds the resolved input and output locations for a render run.
type renderPaths struct {
	root      string
	settings  string
	template  string
	outdir    string
	snapshots string
}

// resolveRenderPaths fills in path defaults from the project config for
// any location not set by a flag.
func resolveRenderPaths() (*renderPaths, error) {
	var cfg *config.Config
	if renderSettings != "" {
		cfg = config.ForSettingsFile(renderSettings)
	} else {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}

	p := &renderPaths{
		root:      cfg.Root,
		settings:  cfg.SettingsFile,
		template:  cfg.DefaultTemplate(),
		outdir:    cfg.OutputDir,
		snapshots: cfg.SnapshotsDir(),
	}
	if renderTemplate != "" {
		p.template = renderTemplate
	}
	if renderOutdir != "" {
		p.outdir = renderOutdir
	}

	return p, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := resolveRenderPaths()
	if err != nil {
		return err
	}

	// Nothing can render without the settings document.
	doc, err := settings.Load(p.settings)
	if err != nil {
		return err
	}

	envs := renderEnvs
	if len(envs) == 0 {
		envs = doc.EnvNames()
	}
	if len(envs) == 0 {
		return fmt.Errorf("no environments declared in %s", p.settings)
	}

	src, err := os.ReadFile(p.template)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	if renderDryRun {
		return renderEnvironments(cmd, doc, envs, p, string(src))
	}

	// The lock keeps two concurrent renders from interleaving writes.
	return lock.WithLock(p.root, "render", func() error {
		if name, err := snapshot.Create(p.snapshots, p.outdir); err != nil {
			ui.Warning("snapshot failed: %v", err)
		} else if name != "" {
			ui.Info("Saved output snapshot %s", name)
		}

		return renderEnvironments(cmd, doc, envs, p, string(src))
	})
}

// renderEnvironments runs the merge → render → sink pipeline for each
// environment, continuing past per-environment failures.
func renderEnvironments(cmd *cobra.Command, doc *settings.Document, envs []string, p *renderPaths, src string) error {
	templateName := filepath.Base(p.template)

	failed := 0
	for _, env := range envs {
		merged, err := doc.Merge(env)
		if err != nil {
			ui.Error("%s: %v", env, err)
			failed++
			continue
		}

		text, err := render.Render(templateName, src, merged)
		if err != nil {
			ui.Error("%s: %v", env, err)
			failed++
			continue
		}

		if renderDryRun {
			output.Preview(cmd.OutOrStdout(), env, text)
			continue
		}

		path, err := output.Write(p.outdir, output.Filename(p.template, env), text)
		if err != nil {
			ui.Error("%s: %v", env, err)
			failed++
			continue
		}

		ui.Success("%s → %s", env, path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d environment(s) failed", failed, len(envs))
	}

	return nil
}
