package main

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// nestedTranslations builds a YAML template from pairs: one mapping per
// file, with each value nested along its key path. Files and keys keep
// the order in which pairs list them.
func nestedTranslations(pairs []translationPair) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pairs {
		if len(p.Path) == 0 {
			setScalar(root, p.File, p.Value)
			continue
		}
		node := mappingChild(root, p.File)
		for _, seg := range p.Path[:len(p.Path)-1] {
			node = mappingChild(node, seg)
		}
		setScalar(node, p.Path.Last(), p.Value)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

// lookup returns the value node stored under key in mapping m.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// mappingChild returns the mapping under key, creating it (or replacing a
// scalar) when needed.
func mappingChild(m *yaml.Node, key string) *yaml.Node {
	if child := lookup(m, key); child != nil {
		if child.Kind != yaml.MappingNode {
			*child = yaml.Node{Kind: yaml.MappingNode}
		}
		return child
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, keyNode(key), child)
	return child
}

func setScalar(m *yaml.Node, key, value string) {
	v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if child := lookup(m, key); child != nil {
		*child = *v
		return
	}
	m.Content = append(m.Content, keyNode(key), v)
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}
