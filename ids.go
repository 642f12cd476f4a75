package sandboxspec

import "gopkg.in/yaml.v3"

// UserId and GroupId are the unsigned 32-bit identifiers a container runs
// as.
type UserId uint32

type GroupId uint32

func decodeUserId(node *yaml.Node) (UserId, error) {
	v, err := decodeUint32(node)
	if err != nil {
		return 0, err
	}
	return UserId(v), nil
}

func decodeGroupId(node *yaml.Node) (GroupId, error) {
	v, err := decodeUint32(node)
	if err != nil {
		return 0, err
	}
	return GroupId(v), nil
}
