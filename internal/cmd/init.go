package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// initCmd scaffolds a new stevedore project.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter envs.yaml and deployment template",
	Long: `Create a starter settings file and manifest template in the current
directory:

  envs.yaml                       Layered settings (defaults + environments)
  templates/deployment.yaml.tmpl  Deployment manifest template

Edit both files and run 'stevedore render' to generate manifests.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const starterSettings = `defaults:
  app: myapp
  image: myapp:latest
  replicas: 2
  resources:
    cpu: 100m
    memory: 128Mi

environments:
  dev:
    replicas: 1
  staging: {}
  prod:
    replicas: 4
    resources:
      cpu: 500m
`

const starterTemplate = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: {{ .app }}-{{ .environment }}
  labels:
    app: {{ .app }}
    environment: {{ .environment }}
spec:
  replicas: {{ .replicas }}
  selector:
    matchLabels:
      app: {{ .app }}
  template:
    metadata:
      labels:
        app: {{ .app }}
        environment: {{ .environment }}
    spec:
      containers:
        - name: {{ .app }}
          image: {{ .image }}
          resources:
            requests:
              cpu: {{ .resources.cpu }}
              memory: {{ .resources.memory }}
`

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	settingsPath := filepath.Join(cwd, config.SettingsFileName)
	if _, err := os.Stat(settingsPath); err == nil {
		return fmt.Errorf("settings file already exists: %s", settingsPath)
	}

	templatePath := filepath.Join(cwd, "templates", "deployment.yaml.tmpl")
	if _, err := os.Stat(templatePath); err == nil {
		return fmt.Errorf("template already exists: %s", templatePath)
	}

	if err := os.WriteFile(settingsPath, []byte(starterSettings), 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(templatePath), 0755); err != nil {
		return fmt.Errorf("create templates directory: %w", err)
	}

	if err := os.WriteFile(templatePath, []byte(starterTemplate), 0644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	ui.Success("Created %s", settingsPath)
	ui.Success("Created %s", templatePath)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit both files and run 'stevedore render' to generate manifests")

	return nil
}
