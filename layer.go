package sandboxspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LayerKind is the closed set of layer variants.
type LayerKind int

const (
	LayerTar LayerKind = iota
	LayerGlob
	LayerPaths
	LayerStubs
	LayerSymlinks
	LayerSharedLibraryDependencies
)

var layerDiscriminators = []string{"tar", "glob", "paths", "stubs", "symlinks", "shared-library-dependencies"}

func (k LayerKind) String() string {
	if int(k) < len(layerDiscriminators) {
		return layerDiscriminators[k]
	}
	return "unknown"
}

// layerTakesModifiers reports whether a variant accepts the strip_prefix,
// prepend_prefix, and canonicalize modifiers.
func layerTakesModifiers(k LayerKind) bool {
	switch k {
	case LayerGlob, LayerPaths, LayerSharedLibraryDependencies:
		return true
	default:
		return false
	}
}

// Symlink is one entry of a "symlinks" layer: a link path to create,
// pointing at target.
type Symlink struct {
	Link   string
	Target string
}

var symlinkFieldNames = []string{"link", "target"}

func decodeSymlink(node *yaml.Node) (Symlink, error) {
	fields, order, err := collectMappingFields(node)
	if err != nil {
		return Symlink{}, err
	}
	if err := rejectUnknown(order, fields, symlinkFieldNames, node); err != nil {
		return Symlink{}, err
	}
	linkNode, err := requireField(fields, "link", node)
	if err != nil {
		return Symlink{}, err
	}
	link, err := decodeString(linkNode)
	if err != nil {
		return Symlink{}, err
	}
	targetNode, err := requireField(fields, "target", node)
	if err != nil {
		return Symlink{}, err
	}
	target, err := decodeString(targetNode)
	if err != nil {
		return Symlink{}, err
	}
	return Symlink{Link: link, Target: target}, nil
}

func decodeSymlinks(node *yaml.Node) ([]Symlink, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalidValueError(fmt.Sprintf("expected a sequence of symlinks, found %s", describeKind(node)), node)
	}
	out := make([]Symlink, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := decodeSymlink(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Layer is a tagged union over the six layer variants, plus the three
// modifiers legal only on glob, paths, and shared-library-dependencies.
type Layer struct {
	Kind LayerKind

	Tar                        string
	Glob                       string
	Paths                      []string
	Stubs                      []string
	Symlinks                   []Symlink
	SharedLibraryDependencies  []string

	StripPrefix   *string
	PrependPrefix *string
	Canonicalize  *bool
}

var layerModifierNames = []string{"strip_prefix", "prepend_prefix", "canonicalize"}

// decodeLayer implements decode_layer: a keyed record carrying exactly one
// of the discriminator keys, plus (for glob/paths/shared-library-dependencies)
// any of the three modifier keys.
func decodeLayer(node *yaml.Node) (Layer, error) {
	fields, order, err := collectMappingFields(node)
	if err != nil {
		return Layer{}, err
	}

	var found []string
	for _, d := range layerDiscriminators {
		if _, ok := fields[d]; ok {
			found = append(found, d)
		}
	}
	switch len(found) {
	case 0:
		return Layer{}, invalidValueError(fmt.Sprintf("expected one of %s", formatSet(layerDiscriminators)), node)
	case 1:
		// fall through
	default:
		return Layer{}, invalidValueError(fmt.Sprintf("at most one of %s may be set, found %s", formatSet(layerDiscriminators), formatSet(found)), node)
	}

	kind, err := parseLayerKind(found[0])
	if err != nil {
		return Layer{}, err
	}

	allowed := []string{found[0]}
	if layerTakesModifiers(kind) {
		allowed = append(allowed, layerModifierNames...)
	}
	if err := rejectUnknown(order, fields, allowed, node); err != nil {
		return Layer{}, err
	}

	layer := Layer{Kind: kind}

	switch kind {
	case LayerTar:
		s, err := decodeString(fields["tar"])
		if err != nil {
			return Layer{}, err
		}
		layer.Tar = s
	case LayerGlob:
		s, err := decodeString(fields["glob"])
		if err != nil {
			return Layer{}, err
		}
		layer.Glob = s
	case LayerPaths:
		paths, err := decodeStringSlice(fields["paths"])
		if err != nil {
			return Layer{}, err
		}
		layer.Paths = paths
	case LayerStubs:
		stubs, err := decodeStringSlice(fields["stubs"])
		if err != nil {
			return Layer{}, err
		}
		layer.Stubs = stubs
	case LayerSymlinks:
		symlinks, err := decodeSymlinks(fields["symlinks"])
		if err != nil {
			return Layer{}, err
		}
		layer.Symlinks = symlinks
	case LayerSharedLibraryDependencies:
		paths, err := decodeStringSlice(fields["shared-library-dependencies"])
		if err != nil {
			return Layer{}, err
		}
		layer.SharedLibraryDependencies = paths
	}

	if layerTakesModifiers(kind) {
		if stripNode, ok := fields["strip_prefix"]; ok {
			s, err := decodeString(stripNode)
			if err != nil {
				return Layer{}, err
			}
			layer.StripPrefix = &s
		}
		if prependNode, ok := fields["prepend_prefix"]; ok {
			s, err := decodeString(prependNode)
			if err != nil {
				return Layer{}, err
			}
			layer.PrependPrefix = &s
		}
		if canonNode, ok := fields["canonicalize"]; ok {
			b, err := decodeBool(canonNode)
			if err != nil {
				return Layer{}, err
			}
			layer.Canonicalize = &b
		}
	}

	return layer, nil
}

func parseLayerKind(discriminator string) (LayerKind, error) {
	for i, d := range layerDiscriminators {
		if d == discriminator {
			return LayerKind(i), nil
		}
	}
	return 0, fmt.Errorf("unreachable: unknown layer discriminator %q", discriminator)
}

func decodeLayerSlice(node *yaml.Node) ([]Layer, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalidValueError(fmt.Sprintf("expected a sequence of layers, found %s", describeKind(node)), node)
	}
	layers := make([]Layer, 0, len(node.Content))
	for _, item := range node.Content {
		l, err := decodeLayer(item)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	return layers, nil
}
