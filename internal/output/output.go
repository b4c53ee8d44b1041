// Package output writes rendered manifests to the output directory or
// previews them on a writer.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cameronsjo/stevedore/internal/fileutil"
)

// Filename derives the output file name for an environment from the
// template file name: templates/deployment.yaml.tmpl rendered for "dev"
// becomes deployment-dev.yaml.
func Filename(templatePath, envName string) string {
	base := filepath.Base(templatePath)
	base = strings.TrimSuffix(base, ".tmpl")
	base = strings.TrimSuffix(base, ".yaml")
	base = strings.TrimSuffix(base, ".yml")
	return base + "-" + envName + ".yaml"
}

// Write writes rendered text to filename under dir, creating the
// directory tree as needed, and returns the written path. Existing files
// are overwritten; writing the same inputs twice yields byte-identical
// output.
func Write(dir, filename, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := fileutil.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}

// Preview writes rendered text to w under an environment header. Nothing
// touches the filesystem.
func Preview(w io.Writer, envName, text string) {
	fmt.Fprintf(w, "--- %s ---\n", envName)
	fmt.Fprint(w, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(w)
	}
}
