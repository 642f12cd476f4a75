package sandboxspec

import "gopkg.in/yaml.v3"

// NetworkMode is the closed set of network postures a container may run
// with.
type NetworkMode int

const (
	NetworkDisabled NetworkMode = iota
	NetworkLoopback
	NetworkLocal
)

func (m NetworkMode) String() string {
	switch m {
	case NetworkDisabled:
		return "disabled"
	case NetworkLoopback:
		return "loopback"
	case NetworkLocal:
		return "local"
	default:
		return "unknown"
	}
}

var networkModeNames = []string{"disabled", "loopback", "local"}

func decodeNetworkMode(node *yaml.Node) (NetworkMode, error) {
	s, err := decodeString(node)
	if err != nil {
		return 0, err
	}
	switch s {
	case "disabled":
		return NetworkDisabled, nil
	case "loopback":
		return NetworkLoopback, nil
	case "local":
		return NetworkLocal, nil
	default:
		return 0, unknownVariantError(s, networkModeNames, node)
	}
}
