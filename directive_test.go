package sandboxspec

import "testing"

func passthroughFilter(s string) (string, error) {
	return s, nil
}

func TestDecodeDirectiveDefaults(t *testing.T) {
	d, err := DecodeDirective(mustNode(t, "{}"), FilterParser[string](passthroughFilter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Filter != nil || d.Timeout != nil || d.Ignore != nil {
		t.Fatalf("expected all-default directive, got %+v", d)
	}
}

func TestDecodeDirectiveFilter(t *testing.T) {
	d, err := DecodeDirective(mustNode(t, "filter: 'name.equals(foo)'"), FilterParser[string](passthroughFilter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Filter == nil || *d.Filter != "name.equals(foo)" {
		t.Fatalf("got %+v", d.Filter)
	}
}

func TestDecodeDirectiveFilterParseFailure(t *testing.T) {
	failing := func(s string) (string, error) {
		return "", &DecodeError{Kind: KindFilterParseFailure}
	}
	if _, err := DecodeDirective(mustNode(t, "filter: bogus"), FilterParser[string](failing)); err == nil {
		t.Fatal("expected filter parse failure to propagate")
	}
}

func TestDecodeDirectiveDelegatesContainerFields(t *testing.T) {
	d, err := DecodeDirective(mustNode(t, "network: loopback\ntimeout: 30\nignore: true"), FilterParser[string](passthroughFilter))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Container.Network == nil || *d.Container.Network != NetworkLoopback {
		t.Fatalf("got %+v", d.Container)
	}
	if d.Timeout == nil || d.Timeout.Duration == nil || d.Timeout.Duration.Seconds() != 30 {
		t.Fatalf("got %+v", d.Timeout)
	}
	if d.Ignore == nil || !*d.Ignore {
		t.Fatalf("got %+v", d.Ignore)
	}
}

func TestDecodeDirectiveUnknownFieldRejected(t *testing.T) {
	if _, err := DecodeDirective(mustNode(t, "bogus: 1"), FilterParser[string](passthroughFilter)); err == nil {
		t.Fatal("expected error for unknown directive field")
	}
}

func TestDecodeDirectiveOrderingErrorsPropagateFromContainer(t *testing.T) {
	doc := "added_mounts:\n  - type: tmp\n    mount_point: /tmp\nmounts:\n  - type: proc\n    mount_point: /proc"
	if _, err := DecodeDirective(mustNode(t, doc), FilterParser[string](passthroughFilter)); err == nil {
		t.Fatal("expected ordering error to propagate from nested container fields")
	}
}
