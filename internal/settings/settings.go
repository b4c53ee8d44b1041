// Package settings loads the layered environment settings document and
// merges per-environment overrides onto shared defaults.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEnvironment indicates a requested environment has no entry in
// the settings document.
var ErrUnknownEnvironment = errors.New("unknown environment")

// EnvironmentKey is injected into merged settings so templates can
// reference the environment they are rendered for.
const EnvironmentKey = "environment"

// Document is a parsed settings file: shared defaults plus a block of
// per-environment overrides.
type Document struct {
	// Defaults holds settings shared by every environment.
	Defaults map[string]any

	// Environments maps environment name to its override block. A nil
	// override block is valid and means "use the defaults unchanged".
	Environments map[string]map[string]any

	// order records environment names in document declaration order.
	order []string
}

// UnmarshalYAML decodes the document from a YAML mapping, preserving the
// declaration order of the environments block.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("settings document must be a mapping, got %s", nodeKind(node))
	}

	d.Environments = make(map[string]map[string]any)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]

		switch key.Value {
		case "defaults":
			if err := value.Decode(&d.Defaults); err != nil {
				return fmt.Errorf("decode defaults block: %w", err)
			}
		case "environments":
			if value.Tag == "!!null" {
				continue
			}
			if value.Kind != yaml.MappingNode {
				return fmt.Errorf("environments block must be a mapping, got %s", nodeKind(value))
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				name := value.Content[j].Value
				if _, exists := d.Environments[name]; exists {
					return fmt.Errorf("duplicate environment %q", name)
				}

				var overrides map[string]any
				if err := value.Content[j+1].Decode(&overrides); err != nil {
					return fmt.Errorf("decode environment %q: %w", name, err)
				}

				d.Environments[name] = overrides
				d.order = append(d.order, name)
			}
		}
	}

	return nil
}

// Load reads and parses a settings document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}

	if doc.Environments == nil {
		doc.Environments = make(map[string]map[string]any)
	}

	return &doc, nil
}

// EnvNames returns the environment names in document declaration order.
func (d *Document) EnvNames() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Merge overlays the named environment's overrides onto the defaults and
// returns a fresh merged settings map. The document is never mutated, so
// merging is safe to repeat and each call yields an independent map.
func (d *Document) Merge(envName string) (map[string]any, error) {
	overrides, ok := d.Environments[envName]
	if !ok {
		available := strings.Join(d.EnvNames(), ", ")
		if available == "" {
			available = "none"
		}
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEnvironment, envName, available)
	}

	merged := DeepMerge(d.Defaults, overrides)

	if _, defined := merged[EnvironmentKey]; !defined {
		merged[EnvironmentKey] = envName
	}

	return merged, nil
}

// nodeKind names a YAML node kind for error messages.
func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
