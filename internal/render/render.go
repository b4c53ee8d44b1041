// Package render executes manifest templates against merged settings.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Render executes template src against the merged settings and returns
// the rendered text. Templates run in strict mode: referencing a settings
// field that does not exist is an error, never an empty substitution.
func Render(name, src string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Funcs(Funcs()).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}

	return buf.String(), nil
}

// RenderFile reads a template file and renders it against data.
func RenderFile(path string, data map[string]any) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}

	return Render(filepath.Base(path), string(src), data)
}

// Funcs returns custom template functions available alongside sprig.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"include": func(path string) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("include %s: %w", path, err)
			}
			return string(data), nil
		},
		"fromJsonFile": func(path string) (any, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("fromJsonFile %s: %w", path, err)
			}
			var result any
			if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
				return nil, fmt.Errorf("fromJsonFile %s: invalid JSON: %w", path, jsonErr)
			}
			return result, nil
		},
	}
}
