package sandboxspec

import (
	"gopkg.in/yaml.v3"
)

// PossiblyImage records whether a dual-source field's value came from an
// explicit literal or was left for the consumer to resolve from an image.
type PossiblyImage[T any] struct {
	FromImage bool
	Value     T
}

// Explicit wraps an explicitly-declared value.
func Explicit[T any](v T) *PossiblyImage[T] {
	return &PossiblyImage[T]{Value: v}
}

// FromImageValue marks a field as sourced from the container's base image;
// the consumer resolves the actual value at job-submission time.
func FromImageValue[T any]() *PossiblyImage[T] {
	return &PossiblyImage[T]{FromImage: true}
}

// Container is TestContainer: the fully-decoded, immutable result of a
// ContainerBuilder.
type Container struct {
	Network                  *NetworkMode
	EnableWritableFileSystem *bool
	User                     *UserId
	Group                    *GroupId

	Mounts      *[]Mount
	AddedMounts []Mount

	Image *Image

	WorkingDirectory *PossiblyImage[string]
	Layers           *PossiblyImage[[]Layer]
	AddedLayers      []Layer
	// Environment and AddedEnvironment are stored as decoded and never
	// merged: a key present in both keeps its own value in each map.
	Environment      *PossiblyImage[map[string]string]
	AddedEnvironment map[string]string
}

// dualSourceField is the closed set of fields I1's provenance ledger
// tracks.
type dualSourceField int

const (
	dualWorkingDirectory dualSourceField = iota
	dualLayers
	dualEnvironment
)

func (f dualSourceField) String() string {
	switch f {
	case dualWorkingDirectory:
		return "working_directory"
	case dualLayers:
		return "layers"
	case dualEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

type provenance int

const (
	provenanceNone provenance = iota
	provenanceExplicit
	provenanceImage
)

// containerFieldNames lists every field accept_field recognizes, in the
// order §3.1 lists them.
var containerFieldNames = []string{
	"network", "enable_writable_file_system", "user", "group",
	"mounts", "added_mounts",
	"image",
	"working_directory",
	"layers", "added_layers",
	"environment", "added_environment",
}

func isContainerField(name string) bool {
	for _, f := range containerFieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// ContainerBuilder accumulates one TestContainer's fields, enforcing I1 and
// I2 incrementally as accept_field is called in document order.
type ContainerBuilder struct {
	container Container
	ledger    map[dualSourceField]provenance
	finalized bool
}

// NewContainerBuilder returns a builder with every field unset.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		ledger: map[dualSourceField]provenance{
			dualWorkingDirectory: provenanceNone,
			dualLayers:           provenanceNone,
			dualEnvironment:      provenanceNone,
		},
	}
}

// AcceptField decodes and stores one field, enforcing the preconditions in
// §4.2's table.
func (b *ContainerBuilder) AcceptField(name string, node *yaml.Node) error {
	switch name {
	case "network":
		mode, err := decodeNetworkMode(node)
		if err != nil {
			return err
		}
		b.container.Network = &mode
	case "enable_writable_file_system":
		v, err := decodeBool(node)
		if err != nil {
			return err
		}
		b.container.EnableWritableFileSystem = &v
	case "user":
		v, err := decodeUserId(node)
		if err != nil {
			return err
		}
		b.container.User = &v
	case "group":
		v, err := decodeGroupId(node)
		if err != nil {
			return err
		}
		b.container.Group = &v
	case "mounts":
		if len(b.container.AddedMounts) > 0 {
			return orderingError("mounts", "added_mounts", node)
		}
		mounts, err := decodeMountSlice(node)
		if err != nil {
			return err
		}
		b.container.Mounts = &mounts
	case "added_mounts":
		mounts, err := decodeMountSlice(node)
		if err != nil {
			return err
		}
		b.container.AddedMounts = append(b.container.AddedMounts, mounts...)
	case "image":
		img, err := decodeImage(node)
		if err != nil {
			return err
		}
		return b.applyImage(img, node)
	case "working_directory":
		if b.ledger[dualWorkingDirectory] == provenanceImage {
			return explicitAfterImageError("working_directory", node)
		}
		path, err := decodeString(node)
		if err != nil {
			return err
		}
		b.container.WorkingDirectory = Explicit(path)
		b.ledger[dualWorkingDirectory] = provenanceExplicit
	case "layers":
		if b.ledger[dualLayers] == provenanceImage {
			return explicitAfterImageError("layers", node)
		}
		if len(b.container.AddedLayers) > 0 {
			return orderingError("layers", "added_layers", node)
		}
		layers, err := decodeLayerSlice(node)
		if err != nil {
			return err
		}
		b.container.Layers = Explicit(layers)
		b.ledger[dualLayers] = provenanceExplicit
	case "added_layers":
		layers, err := decodeLayerSlice(node)
		if err != nil {
			return err
		}
		b.container.AddedLayers = append(b.container.AddedLayers, layers...)
	case "environment":
		if b.ledger[dualEnvironment] == provenanceImage {
			return explicitAfterImageError("environment", node)
		}
		if len(b.container.AddedEnvironment) > 0 {
			return orderingError("environment", "added_environment", node)
		}
		env, err := decodeEnvironment(node)
		if err != nil {
			return err
		}
		b.container.Environment = Explicit(env)
		b.ledger[dualEnvironment] = provenanceExplicit
	case "added_environment":
		env, err := decodeEnvironment(node)
		if err != nil {
			return err
		}
		if b.container.AddedEnvironment == nil {
			b.container.AddedEnvironment = make(map[string]string, len(env))
		}
		for k, v := range env {
			b.container.AddedEnvironment[k] = v
		}
	default:
		return unknownFieldError(name, containerFieldNames, node)
	}
	return nil
}

// applyImage implements the `image` row of §4.2's table: for each field the
// image declares it uses, the ledger must not already say *explicit*, and
// the corresponding added_* accumulator must still be empty.
func (b *ContainerBuilder) applyImage(img Image, node *yaml.Node) error {
	if _, ok := img.Use[ImageUseWorkingDirectory]; ok {
		if b.ledger[dualWorkingDirectory] == provenanceExplicit {
			return imageUseConflictError("working_directory", node)
		}
	}
	if _, ok := img.Use[ImageUseLayers]; ok {
		if b.ledger[dualLayers] == provenanceExplicit {
			return imageUseConflictError("layers", node)
		}
		if len(b.container.AddedLayers) > 0 {
			return imageAfterAddedError("layers", "added_layers", node)
		}
	}
	if _, ok := img.Use[ImageUseEnvironment]; ok {
		if b.ledger[dualEnvironment] == provenanceExplicit {
			return imageUseConflictError("environment", node)
		}
		if len(b.container.AddedEnvironment) > 0 {
			return imageAfterAddedError("environment", "added_environment", node)
		}
	}

	b.container.Image = &img

	if _, ok := img.Use[ImageUseWorkingDirectory]; ok {
		b.container.WorkingDirectory = FromImageValue[string]()
		b.ledger[dualWorkingDirectory] = provenanceImage
	}
	if _, ok := img.Use[ImageUseLayers]; ok {
		b.container.Layers = FromImageValue[[]Layer]()
		b.ledger[dualLayers] = provenanceImage
	}
	if _, ok := img.Use[ImageUseEnvironment]; ok {
		b.container.Environment = FromImageValue[map[string]string]()
		b.ledger[dualEnvironment] = provenanceImage
	}
	return nil
}

// Finalize consumes the builder. The builder must not be used afterward.
func (b *ContainerBuilder) Finalize() Container {
	b.finalized = true
	return b.container
}

// DecodeContainer decodes a mapping as a standalone container declaration,
// accepting only the fields accept_field recognizes.
func DecodeContainer(node *yaml.Node) (Container, error) {
	builder := NewContainerBuilder()
	err := forEachMappingField(node, func(key string, value *yaml.Node) error {
		if !isContainerField(key) {
			return unknownFieldError(key, containerFieldNames, value)
		}
		return builder.AcceptField(key, value)
	})
	if err != nil {
		return Container{}, err
	}
	return builder.Finalize(), nil
}

// NamedContainer is a container declaration usable as a reusable base,
// distinguished from a plain container only by its required name.
type NamedContainer struct {
	Name      string
	Container Container
}

var namedContainerReservedField = "name"

// DecodeNamedContainer decodes the root shape `{name, ...container fields}`.
func DecodeNamedContainer(node *yaml.Node) (NamedContainer, error) {
	n := rootContent(node)
	fields, order, err := collectMappingFields(n)
	if err != nil {
		return NamedContainer{}, err
	}
	nameNode, err := requireField(fields, namedContainerReservedField, n)
	if err != nil {
		return NamedContainer{}, err
	}
	name, err := decodeString(nameNode)
	if err != nil {
		return NamedContainer{}, err
	}

	builder := NewContainerBuilder()
	for _, key := range order {
		if key == namedContainerReservedField {
			continue
		}
		if !isContainerField(key) {
			return NamedContainer{}, unknownFieldError(key, append([]string{namedContainerReservedField}, containerFieldNames...), fields[key])
		}
		if err := builder.AcceptField(key, fields[key]); err != nil {
			return NamedContainer{}, err
		}
	}

	return NamedContainer{Name: name, Container: builder.Finalize()}, nil
}
