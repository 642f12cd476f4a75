package sandboxspec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NonRootPath is a path that has been checked not to be the filesystem
// root. Every mount point is a NonRootPath (I3).
type NonRootPath struct {
	path string
}

// NewNonRootPath validates s and wraps it. The only rejected value is the
// single-character root path "/".
func NewNonRootPath(s string) (NonRootPath, error) {
	if s == "/" {
		return NonRootPath{}, fmt.Errorf("a path of \"/\" not allowed")
	}
	return NonRootPath{path: s}, nil
}

func (p NonRootPath) String() string {
	return p.path
}

func decodeNonRootPath(node *yaml.Node) (NonRootPath, error) {
	s, err := decodeString(node)
	if err != nil {
		return NonRootPath{}, err
	}
	p, err := NewNonRootPath(s)
	if err != nil {
		return NonRootPath{}, invalidValueError(err.Error(), node)
	}
	return p, nil
}
