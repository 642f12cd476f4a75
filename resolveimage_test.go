package sandboxspec

import "testing"

func TestFetchImage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	resolved, err := FetchImage(Image{Name: "alpine:latest", Use: defaultImageUse()})
	if err != nil {
		t.Fatalf("FetchImage() error = %v", err)
	}
	if len(resolved.Layers) == 0 {
		t.Error("expected at least one layer")
	}
}

func TestParseImageEnv(t *testing.T) {
	env := parseImageEnv([]string{"PATH=/usr/bin", "HOME=/root"})
	if env["PATH"] != "/usr/bin" || env["HOME"] != "/root" {
		t.Fatalf("got %v", env)
	}
}
