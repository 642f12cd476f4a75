package sandboxspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MountKind is the closed set of mount variants a container may declare.
type MountKind int

const (
	MountProc MountKind = iota
	MountTmp
	MountSys
	MountBind
	MountDevices
)

var mountKindNames = []string{"proc", "tmp", "sys", "bind", "devices"}

func (k MountKind) String() string {
	if int(k) < len(mountKindNames) {
		return mountKindNames[k]
	}
	return "unknown"
}

// Mount is a tagged union over the five mount variants. Fields outside a
// variant's allowed set are left at their zero value and must not be read.
type Mount struct {
	Kind       MountKind
	MountPoint NonRootPath
	LocalPath  string
	ReadOnly   bool
	Devices    map[Device]struct{}
}

// mountFieldsFor returns the allowed field set for a mount variant.
// "devices" has no mount_point; every other variant requires one.
func mountFieldsFor(kind MountKind) []string {
	switch kind {
	case MountBind:
		return []string{"type", "mount_point", "local_path", "read_only"}
	case MountDevices:
		return []string{"type", "devices"}
	default:
		return []string{"type", "mount_point"}
	}
}

func parseMountKind(s string, node *yaml.Node) (MountKind, error) {
	switch s {
	case "proc":
		return MountProc, nil
	case "tmp":
		return MountTmp, nil
	case "sys":
		return MountSys, nil
	case "bind":
		return MountBind, nil
	case "devices":
		return MountDevices, nil
	default:
		return 0, unknownVariantError(s, mountKindNames, node)
	}
}

// decodeMount implements decode_mount: a {type, mount_point, ...} mapping
// whose remaining allowed fields are determined by "type" (I3).
func decodeMount(node *yaml.Node) (Mount, error) {
	fields, order, err := collectMappingFields(node)
	if err != nil {
		return Mount{}, err
	}
	typeNode, err := requireField(fields, "type", node)
	if err != nil {
		return Mount{}, err
	}
	typeStr, err := decodeString(typeNode)
	if err != nil {
		return Mount{}, err
	}
	kind, err := parseMountKind(typeStr, typeNode)
	if err != nil {
		return Mount{}, err
	}
	allowed := mountFieldsFor(kind)
	if err := rejectUnknown(order, fields, allowed, node); err != nil {
		return Mount{}, err
	}

	m := Mount{Kind: kind}

	if kind != MountDevices {
		mountPointNode, err := requireField(fields, "mount_point", node)
		if err != nil {
			return Mount{}, err
		}
		mountPoint, err := decodeNonRootPath(mountPointNode)
		if err != nil {
			return Mount{}, err
		}
		m.MountPoint = mountPoint
	}

	switch kind {
	case MountBind:
		localPathNode, err := requireField(fields, "local_path", node)
		if err != nil {
			return Mount{}, err
		}
		localPath, err := decodeString(localPathNode)
		if err != nil {
			return Mount{}, err
		}
		m.LocalPath = localPath
		if readOnlyNode, ok := fields["read_only"]; ok {
			readOnly, err := decodeBool(readOnlyNode)
			if err != nil {
				return Mount{}, err
			}
			m.ReadOnly = readOnly
		}
	case MountDevices:
		devicesNode, err := requireField(fields, "devices", node)
		if err != nil {
			return Mount{}, err
		}
		devices, err := decodeDeviceSet(devicesNode)
		if err != nil {
			return Mount{}, err
		}
		m.Devices = devices
	}

	return m, nil
}

func decodeMountSlice(node *yaml.Node) ([]Mount, error) {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, invalidValueError(fmt.Sprintf("expected a sequence of mounts, found %s", describeKind(node)), node)
	}
	mounts := make([]Mount, 0, len(node.Content))
	for _, item := range node.Content {
		m, err := decodeMount(item)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, m)
	}
	return mounts, nil
}
