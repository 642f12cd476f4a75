package sandboxspec

import "testing"

func TestDecodeLayerTar(t *testing.T) {
	l, err := decodeLayer(mustNode(t, "tar: foo.tar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Kind != LayerTar || l.Tar != "foo.tar" {
		t.Fatalf("got %+v", l)
	}
}

func TestDecodeLayerGlobWithModifiers(t *testing.T) {
	l, err := decodeLayer(mustNode(t, "glob: 'foo*.bin'\nstrip_prefix: a\nprepend_prefix: b\ncanonicalize: true"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Glob != "foo*.bin" || l.StripPrefix == nil || *l.StripPrefix != "a" {
		t.Fatalf("got %+v", l)
	}
	if l.PrependPrefix == nil || *l.PrependPrefix != "b" {
		t.Fatalf("got %+v", l)
	}
	if l.Canonicalize == nil || !*l.Canonicalize {
		t.Fatalf("got %+v", l)
	}
}

func TestDecodeLayerStubsRejectsModifiers(t *testing.T) {
	if _, err := decodeLayer(mustNode(t, "stubs: ['/foo/bar']\nstrip_prefix: a")); err == nil {
		t.Fatal("expected error: stubs does not accept strip_prefix")
	}
}

func TestDecodeLayerSymlinks(t *testing.T) {
	l, err := decodeLayer(mustNode(t, "symlinks:\n  - link: /hi\n    target: /there"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Symlinks) != 1 || l.Symlinks[0].Link != "/hi" || l.Symlinks[0].Target != "/there" {
		t.Fatalf("got %+v", l)
	}
}

func TestDecodeLayerSharedLibraryDependencies(t *testing.T) {
	l, err := decodeLayer(mustNode(t, "shared-library-dependencies: [/bin/bash, /bin/sh]\nprepend_prefix: /usr"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.SharedLibraryDependencies) != 2 || l.PrependPrefix == nil || *l.PrependPrefix != "/usr" {
		t.Fatalf("got %+v", l)
	}
}

func TestDecodeLayerNoDiscriminator(t *testing.T) {
	if _, err := decodeLayer(mustNode(t, "strip_prefix: a")); err == nil {
		t.Fatal("expected error: no discriminator present")
	}
}

func TestDecodeLayerMultipleDiscriminators(t *testing.T) {
	if _, err := decodeLayer(mustNode(t, "tar: foo.tar\nglob: bar*")); err == nil {
		t.Fatal("expected error: two discriminators present")
	}
}
