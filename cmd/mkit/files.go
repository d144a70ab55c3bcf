package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// fieldRules is one field with its rule list, in file order.
type fieldRules struct {
	Field string
	Rules []string
}

// readRules parses a YAML (or JSON, which YAML accepts) mapping of field to
// rules. A value is either a "required|min:3" string or a list of rules.
// Document order is kept so fields are checked in the order they are written.
func readRules(path string) ([]fieldRules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("rules file %s is empty", path)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("rules file %s: expected a mapping of field to rules", path)
	}

	out := make([]fieldRules, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var rules []string
		switch value.Kind {
		case yaml.ScalarNode:
			var s string
			if err := value.Decode(&s); err != nil {
				return nil, fmt.Errorf("rules for %q: %w", key.Value, err)
			}
			rules = splitNonEmpty(s)
		case yaml.SequenceNode:
			if err := value.Decode(&rules); err != nil {
				return nil, fmt.Errorf("rules for %q: %w", key.Value, err)
			}
		default:
			return nil, fmt.Errorf("rules for %q: expected a string or a list", key.Value)
		}

		out = append(out, fieldRules{Field: key.Value, Rules: rules})
	}
	return out, nil
}

func splitNonEmpty(rules string) []string {
	var out []string
	for _, r := range strings.Split(rules, "|") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// readData loads the record to validate. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. "-" reads JSON from stdin.
func readData(path string, stdin []byte) (map[string]any, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content = stdin
	} else if content, err = os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	data := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &data)
	default:
		err = json.Unmarshal(content, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return data, nil
}
