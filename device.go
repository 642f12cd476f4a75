package sandboxspec

import "gopkg.in/yaml.v3"

// Device is the closed set of device nodes a "devices" mount may expose.
type Device int

const (
	DeviceNull Device = iota
	DeviceZero
	DeviceFull
	DeviceRandom
	DeviceURandom
	DeviceTTY
)

var deviceNames = []string{"null", "zero", "full", "random", "urandom", "tty"}

func (d Device) String() string {
	switch d {
	case DeviceNull:
		return "null"
	case DeviceZero:
		return "zero"
	case DeviceFull:
		return "full"
	case DeviceRandom:
		return "random"
	case DeviceURandom:
		return "urandom"
	case DeviceTTY:
		return "tty"
	default:
		return "unknown"
	}
}

func parseDevice(s string, node *yaml.Node) (Device, error) {
	switch s {
	case "null":
		return DeviceNull, nil
	case "zero":
		return DeviceZero, nil
	case "full":
		return DeviceFull, nil
	case "random":
		return DeviceRandom, nil
	case "urandom":
		return DeviceURandom, nil
	case "tty":
		return DeviceTTY, nil
	default:
		return 0, unknownVariantError(s, deviceNames, node)
	}
}

// NewDeviceSet builds a device set from individual devices, for tests and
// callers constructing values directly.
func NewDeviceSet(devices ...Device) map[Device]struct{} {
	set := make(map[Device]struct{}, len(devices))
	for _, d := range devices {
		set[d] = struct{}{}
	}
	return set
}

// decodeDeviceSet implements decode_device_set: a non-empty sequence of
// device identifiers drawn from the closed Device universe (I5).
func decodeDeviceSet(node *yaml.Node) (map[Device]struct{}, error) {
	if node == nil || node.Kind == 0 {
		return nil, missingFieldError("devices", node)
	}
	if node.Kind != yaml.SequenceNode {
		return nil, invalidValueError("expected a sequence of devices", node)
	}
	if len(node.Content) == 0 {
		return nil, invalidValueError("'devices' must not be empty", node)
	}
	set := make(map[Device]struct{}, len(node.Content))
	for _, item := range node.Content {
		s, err := decodeString(item)
		if err != nil {
			return nil, err
		}
		d, err := parseDevice(s, item)
		if err != nil {
			return nil, err
		}
		set[d] = struct{}{}
	}
	return set, nil
}
