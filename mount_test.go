package sandboxspec

import "testing"

func TestDecodeMountProc(t *testing.T) {
	m, err := decodeMount(mustNode(t, "type: proc\nmount_point: /proc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Kind != MountProc || m.MountPoint.String() != "/proc" {
		t.Fatalf("got %+v", m)
	}
}

func TestDecodeMountBindDefaults(t *testing.T) {
	m, err := decodeMount(mustNode(t, "type: bind\nmount_point: /mnt\nlocal_path: /host"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ReadOnly {
		t.Fatal("expected read_only to default false")
	}
	if m.LocalPath != "/host" {
		t.Fatalf("got local_path %q", m.LocalPath)
	}
}

func TestDecodeMountBindMissingLocalPath(t *testing.T) {
	if _, err := decodeMount(mustNode(t, "type: bind\nmount_point: /mnt")); err == nil {
		t.Fatal("expected error for missing local_path")
	}
}

func TestDecodeMountRootMountPointRejected(t *testing.T) {
	if _, err := decodeMount(mustNode(t, "type: proc\nmount_point: /")); err == nil {
		t.Fatal("expected error for root mount point")
	}
}

func TestDecodeMountDevices(t *testing.T) {
	m, err := decodeMount(mustNode(t, "type: devices\ndevices: [null, tty]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Devices) != 2 {
		t.Fatalf("got %v", m.Devices)
	}
}

func TestDecodeMountDevicesRejectsMountPoint(t *testing.T) {
	if _, err := decodeMount(mustNode(t, "type: devices\nmount_point: /dev\ndevices: [null, tty]")); err == nil {
		t.Fatal("expected error: devices does not accept mount_point")
	}
}

func TestDecodeMountUnknownFieldForVariant(t *testing.T) {
	if _, err := decodeMount(mustNode(t, "type: proc\nmount_point: /proc\nlocal_path: /host")); err == nil {
		t.Fatal("expected error for field not permitted by variant")
	}
}

func TestDecodeMountUnknownType(t *testing.T) {
	if _, err := decodeMount(mustNode(t, "type: bogus\nmount_point: /x")); err == nil {
		t.Fatal("expected error for unknown mount type")
	}
}
