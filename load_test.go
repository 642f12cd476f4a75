package sandboxspec

import (
	"context"
	"testing"
)

func TestLoadAllMultipleDocuments(t *testing.T) {
	data := []byte("network: local\n---\nnetwork: disabled\n---\nnetwork: loopback\n")
	directives, err := LoadAll(context.Background(), data, FilterParser[string](passthroughFilter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directives) != 3 {
		t.Fatalf("got %d directives", len(directives))
	}
	want := []NetworkMode{NetworkLocal, NetworkDisabled, NetworkLoopback}
	for i, d := range directives {
		if d.Container.Network == nil || *d.Container.Network != want[i] {
			t.Fatalf("document %d: got %+v, want network %v", i, d.Container.Network, want[i])
		}
	}
}

func TestLoadAllPropagatesFirstError(t *testing.T) {
	data := []byte("network: local\n---\nnetwork: bogus\n")
	if _, err := LoadAll(context.Background(), data, FilterParser[string](passthroughFilter)); err == nil {
		t.Fatal("expected error from invalid document to propagate")
	}
}

func TestLoadAllEmptyInput(t *testing.T) {
	directives, err := LoadAll(context.Background(), []byte(""), FilterParser[string](passthroughFilter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(directives) != 0 {
		t.Fatalf("got %d directives", len(directives))
	}
}
