package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSettings = `defaults:
  app: web
  image: web:latest
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

const testTemplate = `app: {{ .app }}
environment: {{ .environment }}
replicas: {{ .replicas }}
cpu: {{ .resources.cpu }}
memory: {{ .resources.memory }}
`

// resetFlags returns the package-level flag state to defaults so one
// test's flags don't leak into the next. The --env flag appends, so
// renderEnvs in particular must go back to nil between executions.
func resetFlags() {
	renderEnvs = nil
	renderSettings = ""
	renderTemplate = ""
	renderOutdir = ""
	renderDryRun = false
	environmentsSettings = ""
	rollbackOutdir = ""
	checkOnly = false
}

// executeCmd executes the root command with the given args and returns the output.
// This handles proper state reset between test executions.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	// Important: Set args BEFORE setting output buffers
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// setupProject creates a project directory with a settings file and
// deployment template, and makes it the working directory for the test.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "envs.yaml"), []byte(testSettings), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "deployment.yaml.tmpl"), []byte(testTemplate), 0644))
	chdir(t, dir)
	return dir
}

// readOutput reads a rendered manifest from the project's output directory.
func readOutput(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "build", filename))
	require.NoError(t, err)
	return string(data)
}

// chdir changes the working directory for the test and restores it on cleanup,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatal(err)
		}
	})
}
