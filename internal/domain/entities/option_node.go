package entities

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OptionKind tags the variant held by an OptionNode.
type OptionKind int

const (
	ScalarOption OptionKind = iota
	SequenceOption
	MappingOption
)

// OptionNode is a target's option tree: a scalar, a sequence of nodes or an
// ordered mapping of names to nodes.
type OptionNode struct {
	Kind    OptionKind
	Value   any // scalar only: string, int64, float64, bool or nil
	Items   []OptionNode
	Entries []OptionEntry
}

// OptionEntry is one key of a mapping node.
type OptionEntry struct {
	Key   string
	Value OptionNode
}

// Scalar builds a scalar node.
func Scalar(value any) OptionNode {
	return OptionNode{Kind: ScalarOption, Value: value}
}

// Sequence builds a sequence node.
func Sequence(items ...OptionNode) OptionNode {
	return OptionNode{Kind: SequenceOption, Items: items}
}

// Mapping builds a mapping node keeping the entries order.
func Mapping(entries ...OptionEntry) OptionNode {
	return OptionNode{Kind: MappingOption, Entries: entries}
}

// Entry builds a mapping entry.
func Entry(key string, value OptionNode) OptionEntry {
	return OptionEntry{Key: key, Value: value}
}

// Lookup returns the value stored under key in a mapping node.
func (n OptionNode) Lookup(key string) (OptionNode, bool) {
	if n.Kind != MappingOption {
		return OptionNode{}, false
	}
	for _, entry := range n.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return OptionNode{}, false
}

// Resolve renders every scalar of the tree against context and coerces the
// result back to a typed scalar. It returns a new tree; n is left untouched.
func (n OptionNode) Resolve(context TemplateContext) OptionNode {
	switch n.Kind {
	case MappingOption:
		entries := make([]OptionEntry, 0, len(n.Entries))
		for _, entry := range n.Entries {
			entries = append(entries, Entry(entry.Key, entry.Value.Resolve(context)))
		}
		return Mapping(entries...)
	case SequenceOption:
		items := make([]OptionNode, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, item.Resolve(context))
		}
		return Sequence(items...)
	default:
		if n.Value == nil {
			return Scalar(nil)
		}
		return Scalar(Coerce(RenderTemplate(scalarText(n.Value), context)))
	}
}

// Interface converts the tree to plain Go values: map[string]any, []any or a scalar.
func (n OptionNode) Interface() any {
	switch n.Kind {
	case MappingOption:
		out := make(map[string]any, len(n.Entries))
		for _, entry := range n.Entries {
			out[entry.Key] = entry.Value.Interface()
		}
		return out
	case SequenceOption:
		out := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			out = append(out, item.Interface())
		}
		return out
	default:
		return n.Value
	}
}

// UnmarshalYAML decodes a YAML node keeping the declaration order of mapping keys.
func (n *OptionNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			*n = Mapping()
			return nil
		}
		return n.UnmarshalYAML(value.Content[0])
	case yaml.AliasNode:
		return n.UnmarshalYAML(value.Alias)
	case yaml.MappingNode:
		entries := make([]OptionEntry, 0, len(value.Content)/2) //nolint:mnd // key/value pairs
		for i := 0; i+1 < len(value.Content); i += 2 {
			var child OptionNode
			if err := child.UnmarshalYAML(value.Content[i+1]); err != nil {
				return err
			}
			entries = append(entries, Entry(value.Content[i].Value, child))
		}
		*n = Mapping(entries...)
	case yaml.SequenceNode:
		items := make([]OptionNode, 0, len(value.Content))
		for _, item := range value.Content {
			var child OptionNode
			if err := child.UnmarshalYAML(item); err != nil {
				return err
			}
			items = append(items, child)
		}
		*n = Sequence(items...)
	case yaml.ScalarNode:
		var scalar any
		if err := value.Decode(&scalar); err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		if i, ok := scalar.(int); ok {
			scalar = int64(i)
		}
		*n = Scalar(scalar)
	default:
		return fmt.Errorf("line %d: unsupported option node", value.Line)
	}
	return nil
}
