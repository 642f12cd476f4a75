package sandboxspec

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Timeout is the inner Option<Duration> from the directive's timeout
// field: a nil Duration means "set, but no timeout"; a non-nil Duration is
// the positive timeout to apply (I6).
type Timeout struct {
	Duration *time.Duration
}

// decodeTimeout implements I6: the field value is a non-negative integer
// of seconds. Zero normalizes to "set, no timeout"; a positive value
// normalizes to "set, that many seconds".
func decodeTimeout(node *yaml.Node) (*Timeout, error) {
	n, err := decodeUint32(node)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return &Timeout{}, nil
	}
	d := time.Duration(n) * time.Second
	return &Timeout{Duration: &d}, nil
}
