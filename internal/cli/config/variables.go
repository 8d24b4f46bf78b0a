package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/reflector/internal/orm/parsing"
)

// LoadVariables reads a YAML variables file. Nested mappings are flattened
// into dotted keys and key case is preserved.
func LoadVariables(path string) (parsing.Variables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file: %w", err)
	}
	vars, err := ParseVariables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

// ParseVariables parses YAML variables
func ParseVariables(data []byte) (parsing.Variables, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid variables: %w", err)
	}

	vars := make(parsing.Variables)
	if len(root.Content) == 0 {
		return vars, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid variables: line %d: expected a mapping", doc.Line)
	}
	if err := flatten("", doc, vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func flatten(prefix string, node *yaml.Node, into parsing.Variables) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(key, node.Content[i+1], into); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("invalid variables: line %d: %s must be a list of scalars", item.Line, prefix)
			}
			items = append(items, item.Value)
		}
		into[prefix] = strings.Join(items, ",")
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			into[prefix] = ""
		} else {
			into[prefix] = node.Value
		}
	}
	return nil
}

// ParseAssignments parses key=value pairs, as given on the command line
func ParseAssignments(pairs []string) (parsing.Variables, error) {
	vars := make(parsing.Variables, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %s, expected key=value", strconv.Quote(pair))
		}
		vars[key] = value
	}
	return vars, nil
}

// Merge copies every source into a new store; later sources win
func Merge(sources ...parsing.Variables) parsing.Variables {
	merged := make(parsing.Variables)
	for _, src := range sources {
		for k, v := range src {
			merged[k] = v
		}
	}
	return merged
}
