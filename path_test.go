package sandboxspec

import "testing"

func TestNewNonRootPath(t *testing.T) {
	if _, err := NewNonRootPath("/"); err == nil {
		t.Fatal("expected error for root path")
	}
	p, err := NewNonRootPath("/foo/bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/foo/bar" {
		t.Fatalf("got %q", p.String())
	}
}
