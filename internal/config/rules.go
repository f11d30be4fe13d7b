package config

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Rule routes filenames matching any of Patterns into Folder.
type Rule struct {
	Folder   string
	Patterns []string
}

// RuleSet is an ordered list of rules. Earlier rules take precedence, and
// on disk it is written as a mapping whose key order is that precedence.
type RuleSet []Rule

// UnmarshalYAML decodes a folder -> patterns mapping keeping document order.
func (r *RuleSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*r = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: custom_extension_rules must be a mapping of folder to patterns", value.Line)
	}

	rules := make(RuleSet, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]

		var patterns []string
		if err := val.Decode(&patterns); err != nil {
			return fmt.Errorf("line %d: patterns for %q: %w", val.Line, key.Value, err)
		}
		rules = append(rules, Rule{Folder: key.Value, Patterns: patterns})
	}
	*r = rules
	return nil
}

// MarshalYAML encodes the rules as a mapping in precedence order.
func (r RuleSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, rule := range r {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rule.Folder}

		val := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, p := range rule.Patterns {
			val.Content = append(val.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// Folders returns the rule folder names in precedence order.
func (r RuleSet) Folders() []string {
	names := make([]string, 0, len(r))
	for _, rule := range r {
		names = append(names, rule.Folder)
	}
	return names
}
