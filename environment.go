package sandboxspec

import "gopkg.in/yaml.v3"

// decodeEnvironment implements decode_environment: an ordered key/value map
// of strings. Duplicate keys are already rejected by forEachMappingField
// (I4); iteration order of the result is not preserved, per spec.
func decodeEnvironment(node *yaml.Node) (map[string]string, error) {
	fields, _, err := collectMappingFields(node)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for key, valueNode := range fields {
		value, err := decodeString(valueNode)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}
