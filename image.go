package sandboxspec

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	"gopkg.in/yaml.v3"
)

// ImageUse is the closed set of fields a container may inherit from a base
// image.
type ImageUse int

const (
	ImageUseLayers ImageUse = iota
	ImageUseEnvironment
	ImageUseWorkingDirectory
)

var imageUseNames = []string{"layers", "environment", "working_directory"}

func (u ImageUse) String() string {
	switch u {
	case ImageUseLayers:
		return "layers"
	case ImageUseEnvironment:
		return "environment"
	case ImageUseWorkingDirectory:
		return "working_directory"
	default:
		return "unknown"
	}
}

// Image is the name of a base image plus the set of fields the container
// inherits from it (I7: a bare name is sugar for {layers, environment}).
type Image struct {
	Name string
	Use  map[ImageUse]struct{}
}

func defaultImageUse() map[ImageUse]struct{} {
	return NewImageUseSet(ImageUseLayers, ImageUseEnvironment)
}

// NewImageUseSet builds an ImageUse set, for tests and callers constructing
// values directly.
func NewImageUseSet(uses ...ImageUse) map[ImageUse]struct{} {
	set := make(map[ImageUse]struct{}, len(uses))
	for _, u := range uses {
		set[u] = struct{}{}
	}
	return set
}

// validateImageName checks that name is a syntactically plausible image
// reference, using the same relaxed parser the downstream registry client
// uses before ever touching the network.
func validateImageName(imageName string, node *yaml.Node) error {
	if _, err := name.ParseReference(imageName, name.WeakValidation); err != nil {
		return invalidValueError(fmt.Sprintf("invalid image reference %q: %s", imageName, err), node)
	}
	return nil
}

func parseImageUseItem(s string, node *yaml.Node) (ImageUse, error) {
	switch s {
	case "layers":
		return ImageUseLayers, nil
	case "environment":
		return ImageUseEnvironment, nil
	case "working_directory":
		return ImageUseWorkingDirectory, nil
	default:
		return 0, unknownVariantError(s, imageUseNames, node)
	}
}

func decodeImageUseSet(node *yaml.Node) (map[ImageUse]struct{}, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalidValueError("expected a sequence of image uses", node)
	}
	set := make(map[ImageUse]struct{}, len(node.Content))
	for _, item := range node.Content {
		s, err := decodeString(item)
		if err != nil {
			return nil, err
		}
		u, err := parseImageUseItem(s, item)
		if err != nil {
			return nil, err
		}
		set[u] = struct{}{}
	}
	return set, nil
}

var imageFieldNames = []string{"name", "use"}

// decodeImage implements decode_image_reference: either a bare string
// (sugar per I7) or a {name, use?} mapping.
func decodeImage(node *yaml.Node) (Image, error) {
	n := rootContent(node)
	if n == nil {
		return Image{}, invalidValueError("expected an image reference", node)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		imageName, err := decodeString(n)
		if err != nil {
			return Image{}, err
		}
		if err := validateImageName(imageName, n); err != nil {
			return Image{}, err
		}
		return Image{Name: imageName, Use: defaultImageUse()}, nil
	case yaml.MappingNode:
		fields, order, err := collectMappingFields(n)
		if err != nil {
			return Image{}, err
		}
		if err := rejectUnknown(order, fields, imageFieldNames, n); err != nil {
			return Image{}, err
		}
		nameNode, err := requireField(fields, "name", n)
		if err != nil {
			return Image{}, err
		}
		imageName, err := decodeString(nameNode)
		if err != nil {
			return Image{}, err
		}
		if err := validateImageName(imageName, nameNode); err != nil {
			return Image{}, err
		}
		use := defaultImageUse()
		if useNode, ok := fields["use"]; ok {
			use, err = decodeImageUseSet(useNode)
			if err != nil {
				return Image{}, err
			}
		}
		return Image{Name: imageName, Use: use}, nil
	default:
		return Image{}, invalidValueError(fmt.Sprintf("expected an image reference, found %s", describeKind(n)), n)
	}
}
