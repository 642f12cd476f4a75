package sandboxspec

import (
	"gopkg.in/yaml.v3"
)

// FilterParser parses a directive's `filter` string into the caller's own
// filter-expression type F. The core calls it exactly once per directive
// whose filter field is present.
type FilterParser[F any] func(s string) (F, error)

// Directive is TestDirective<F>: everything accept_field does not claim for
// the nested container, plus the container itself.
type Directive[F any] struct {
	Filter                 *F
	Container              Container
	IncludeSharedLibraries *bool
	Timeout                *Timeout
	Ignore                 *bool
}

var directiveOnlyFieldNames = []string{"filter", "include_shared_libraries", "timeout", "ignore"}

func allDirectiveFieldNames() []string {
	return append(append([]string(nil), directiveOnlyFieldNames...), containerFieldNames...)
}

// DecodeDirective implements the directive decoder: it is a free function,
// not a method on Directive[F], because Go methods cannot introduce a type
// parameter beyond the receiver's own.
func DecodeDirective[F any](node *yaml.Node, parse FilterParser[F]) (Directive[F], error) {
	var directive Directive[F]
	builder := NewContainerBuilder()

	err := forEachMappingField(node, func(key string, value *yaml.Node) error {
		switch {
		case key == "filter":
			s, err := decodeString(value)
			if err != nil {
				return err
			}
			parsed, err := parse(s)
			if err != nil {
				return filterParseError(err, value)
			}
			directive.Filter = &parsed
			return nil
		case key == "include_shared_libraries":
			v, err := decodeBool(value)
			if err != nil {
				return err
			}
			directive.IncludeSharedLibraries = &v
			return nil
		case key == "timeout":
			t, err := decodeTimeout(value)
			if err != nil {
				return err
			}
			directive.Timeout = t
			return nil
		case key == "ignore":
			v, err := decodeBool(value)
			if err != nil {
				return err
			}
			directive.Ignore = &v
			return nil
		case isContainerField(key):
			return builder.AcceptField(key, value)
		default:
			return unknownFieldError(key, allDirectiveFieldNames(), value)
		}
	})
	if err != nil {
		return Directive[F]{}, err
	}

	directive.Container = builder.Finalize()
	return directive, nil
}

// ParseDirective decodes a single directive document.
func ParseDirective[F any](data []byte, parse FilterParser[F]) (Directive[F], error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Directive[F]{}, invalidValueError(err.Error(), nil)
	}
	return DecodeDirective(rootContent(&node), parse)
}

// ParseContainer decodes a single document as a standalone container.
func ParseContainer(data []byte) (Container, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Container{}, invalidValueError(err.Error(), nil)
	}
	return DecodeContainer(rootContent(&node))
}

// ParseNamedContainer decodes a single document as a named container.
func ParseNamedContainer(data []byte) (NamedContainer, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return NamedContainer{}, invalidValueError(err.Error(), nil)
	}
	n := rootContent(&node)
	if isAbsent(n) {
		return NamedContainer{}, missingFieldError(namedContainerReservedField, nil)
	}
	return DecodeNamedContainer(n)
}
