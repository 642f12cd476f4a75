package sandboxspec

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeErrorKind classifies a DecodeError, matching the taxonomy in the
// directive/container schema: unknown or duplicate fields, missing
// sub-fields, unknown tag-union variants, invalid values, and the two
// cross-field rules (ordering and dual source).
type DecodeErrorKind int

const (
	KindUnknownField DecodeErrorKind = iota
	KindDuplicateField
	KindMissingField
	KindUnknownVariant
	KindInvalidValue
	KindOrderingViolation
	KindSourceConflict
	KindFilterParseFailure
)

// DecodeError is the single error type the core ever returns. Every
// message follows a subject (field name, single-quoted), verb phrase, and
// object shape so callers can match on substrings without parsing Kind.
type DecodeError struct {
	Kind    DecodeErrorKind
	Line    int
	Column  int
	message string
}

func (e *DecodeError) Error() string {
	return e.message
}

func newDecodeError(kind DecodeErrorKind, node *yaml.Node, format string, args ...interface{}) *DecodeError {
	e := &DecodeError{Kind: kind, message: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Line = node.Line
		e.Column = node.Column
	}
	return e
}

func formatSet(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return "{" + strings.Join(sorted, ", ") + "}"
}

func unknownFieldError(key string, allowed []string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindUnknownField, node, "unknown field '%s', expected one of %s", key, formatSet(allowed))
}

func duplicateFieldError(key string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindDuplicateField, node, "duplicate field '%s'", key)
}

func missingFieldError(field string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindMissingField, node, "missing field '%s'", field)
}

func unknownVariantError(value string, allowed []string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindUnknownVariant, node, "unknown variant '%s', expected one of %s", value, formatSet(allowed))
}

func invalidValueError(message string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindInvalidValue, node, "%s", message)
}

// orderingError reports an I2 breach: field was set after its append-only
// or replace-only sibling.
func orderingError(field, after string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindOrderingViolation, node, "field '%s' cannot be set after '%s'", field, after)
}

// explicitAfterImageError reports setting a dual-source field explicitly
// after an earlier `image` use already claimed it.
func explicitAfterImageError(field string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindSourceConflict, node, "field '%s' cannot be set after 'image' field that uses '%s'", field, field)
}

// imageUseConflictError reports an `image` use claiming a field that was
// already set explicitly earlier in the declaration.
func imageUseConflictError(field string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindSourceConflict, node, "field 'image' cannot use '%s' if field '%s' is also set", field, field)
}

// imageAfterAddedError reports an `image` use of layers/environment coming
// after the corresponding added_* field already accumulated entries.
func imageAfterAddedError(field, addedField string, node *yaml.Node) *DecodeError {
	return newDecodeError(KindSourceConflict, node, "field 'image' that uses '%s' cannot be set after '%s'", field, addedField)
}

func filterParseError(underlying error, node *yaml.Node) *DecodeError {
	return newDecodeError(KindFilterParseFailure, node, "%s", underlying.Error())
}
