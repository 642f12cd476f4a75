package sandboxspec

import "testing"

func TestDecodeImageBareString(t *testing.T) {
	img, err := decodeImage(mustNode(t, `busybox:latest`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Name != "busybox:latest" {
		t.Fatalf("got name %q", img.Name)
	}
	want := defaultImageUse()
	if len(img.Use) != len(want) {
		t.Fatalf("got use %v want %v", img.Use, want)
	}
}

func TestDecodeImageStructuredEquivalence(t *testing.T) {
	bare, err := decodeImage(mustNode(t, `busybox:latest`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	structured, err := decodeImage(mustNode(t, "name: busybox:latest\nuse: [layers, environment]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bare.Name != structured.Name || len(bare.Use) != len(structured.Use) {
		t.Fatalf("bare %+v != structured %+v", bare, structured)
	}
}

func TestDecodeImageInvalidName(t *testing.T) {
	if _, err := decodeImage(mustNode(t, `"!!!not a reference!!!"`)); err == nil {
		t.Fatal("expected error for invalid image reference")
	}
}

func TestDecodeImageUnknownUse(t *testing.T) {
	if _, err := decodeImage(mustNode(t, "name: busybox:latest\nuse: [bogus]")); err == nil {
		t.Fatal("expected error for unknown use entry")
	}
}
