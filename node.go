package sandboxspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rootContent unwraps a *yaml.Node that may be a DocumentNode (as produced
// by a Decoder.Decode call) down to its actual content node.
func rootContent(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

func isAbsent(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || node.Tag == "!!null"
}

// forEachMappingField walks a mapping node's key/value pairs in document
// order, rejecting duplicate keys (I4). A nil, zero, or explicit-null node
// is treated as an empty mapping, so decoding an absent declaration yields
// every field's zero value (P5) instead of an error.
func forEachMappingField(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	n := rootContent(node)
	if isAbsent(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return invalidValueError(fmt.Sprintf("expected a mapping, found %s", describeKind(n)), n)
	}
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		valueNode := n.Content[i+1]
		key := keyNode.Value
		if seen[key] {
			return duplicateFieldError(key, keyNode)
		}
		seen[key] = true
		if err := fn(key, valueNode); err != nil {
			return err
		}
	}
	return nil
}

// collectMappingFields is like forEachMappingField, but gathers fields into
// a lookup map plus their document order. Used by decoders (mounts,
// layers, image references, symlinks) where cross-field order doesn't
// matter, only presence and the closed set of permitted keys.
func collectMappingFields(node *yaml.Node) (map[string]*yaml.Node, []string, error) {
	fields := make(map[string]*yaml.Node)
	var order []string
	err := forEachMappingField(node, func(key string, value *yaml.Node) error {
		fields[key] = value
		order = append(order, key)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return fields, order, nil
}

// rejectUnknown reports the first (in document order) field not in allowed.
func rejectUnknown(order []string, fields map[string]*yaml.Node, allowed []string, node *yaml.Node) error {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}
	for _, key := range order {
		if !allowedSet[key] {
			return unknownFieldError(key, allowed, fields[key])
		}
	}
	return nil
}

func requireField(fields map[string]*yaml.Node, name string, context *yaml.Node) (*yaml.Node, error) {
	n, ok := fields[name]
	if !ok {
		return nil, missingFieldError(name, context)
	}
	return n, nil
}

func describeKind(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return "a scalar value"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unsupported value"
	}
}

func decodeString(node *yaml.Node) (string, error) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", invalidValueError(fmt.Sprintf("expected a string, found %s", describeKind(node)), node)
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return "", invalidValueError(fmt.Sprintf("expected a string: %s", err), node)
	}
	return s, nil
}

func decodeBool(node *yaml.Node) (bool, error) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return false, invalidValueError(fmt.Sprintf("expected a boolean, found %s", describeKind(node)), node)
	}
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, invalidValueError(fmt.Sprintf("expected a boolean: %s", err), node)
	}
	return b, nil
}

func decodeUint32(node *yaml.Node) (uint32, error) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, invalidValueError(fmt.Sprintf("expected a non-negative integer, found %s", describeKind(node)), node)
	}
	var n uint32
	if err := node.Decode(&n); err != nil {
		return 0, invalidValueError(fmt.Sprintf("expected a non-negative integer: %s", err), node)
	}
	return n, nil
}

func decodeStringSlice(node *yaml.Node) ([]string, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalidValueError(fmt.Sprintf("expected a sequence of strings, found %s", describeKind(node)), node)
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := decodeString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
