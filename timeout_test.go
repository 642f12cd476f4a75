package sandboxspec

import "testing"

func TestDecodeTimeoutZero(t *testing.T) {
	tm, err := decodeTimeout(mustNode(t, `0`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Duration != nil {
		t.Fatalf("expected no timeout, got %v", *tm.Duration)
	}
}

func TestDecodeTimeoutPositive(t *testing.T) {
	tm, err := decodeTimeout(mustNode(t, `5`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Duration == nil || tm.Duration.Seconds() != 5 {
		t.Fatalf("expected 5s timeout, got %v", tm.Duration)
	}
}
