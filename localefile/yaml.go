package localefile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// mergeKeyTag is the resolved tag of the YAML "<<" merge key.
const mergeKeyTag = "!!merge"

// decodeYAML decodes a YAML document, keeping key order. Aliases are
// resolved and "<<" merge keys are expanded, explicit keys taking
// precedence over merged ones.
func decodeYAML(data []byte) (*Branch, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// yaml.Unmarshal wraps the document in a DocumentNode.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewBranch(), nil
	}

	y := &yamlWalker{active: make(map[*yaml.Node]bool)}
	root := resolveAlias(doc.Content[0])
	switch {
	case root.Kind == yaml.MappingNode:
		return y.mapping(root)
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return NewBranch(), nil
	default:
		return nil, fmt.Errorf("document root: %w", ErrNotMapping)
	}
}

type yamlWalker struct {
	// active holds the mappings currently being converted; an alias back
	// into one of them is a cycle.
	active map[*yaml.Node]bool
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == mergeKeyTag || (n.Value == "<<" && n.Style == 0))
}

func (y *yamlWalker) mapping(node *yaml.Node) (*Branch, error) {
	if y.active[node] {
		return nil, fmt.Errorf("line %d: recursive alias", node.Line)
	}
	y.active[node] = true
	defer delete(y.active, node)

	b := NewBranch()
	var merges []*yaml.Node

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolveAlias(node.Content[i])
		valNode := node.Content[i+1]

		if isMergeKey(keyNode) {
			merges = append(merges, valNode)
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
		}

		key := keyNode.Value
		if b.Has(key) {
			return nil, fmt.Errorf("line %d: mapping key %q already defined", keyNode.Line, key)
		}
		n, err := y.value(valNode)
		if err != nil {
			return nil, err
		}
		b.Set(key, n)
	}

	for _, m := range merges {
		if err := y.merge(b, m); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// merge copies keys of the mapping (or sequence of mappings) referenced by
// a "<<" value into b, skipping keys b already has.
func (y *yamlWalker) merge(b *Branch, valNode *yaml.Node) error {
	valNode = resolveAlias(valNode)
	var sources []*yaml.Node
	switch valNode.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{valNode}
	case yaml.SequenceNode:
		for _, item := range valNode.Content {
			sources = append(sources, resolveAlias(item))
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", valNode.Line)
	}

	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		merged, err := y.mapping(src)
		if err != nil {
			return err
		}
		merged.each(func(key string, n Node) {
			if !b.Has(key) {
				b.Set(key, n)
			}
		})
	}
	return nil
}

func (y *yamlWalker) value(node *yaml.Node) (Node, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		return y.mapping(node)
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind == yaml.ScalarNode {
				items = append(items, item.Value)
			}
		}
		return &Leaf{Value: strings.Join(items, "\n")}, nil
	default:
		return &Leaf{Value: node.Value}, nil
	}
}
