package manifest

import (
	"fmt"
)

// LinkSpec is one declared link. A simple spec names a path that is used
// both inside the repository and inside the configuration tree; a mapped
// spec names the two sides separately.
type LinkSpec struct {
	source string
	target string
	mapped bool
}

// Simple returns a spec whose source doubles as its target.
func Simple(path string) LinkSpec {
	return LinkSpec{source: path}
}

// Mapped returns a spec linking source (inside the repository) to target
// (inside the configuration tree).
func Mapped(source, target string) LinkSpec {
	return LinkSpec{source: source, target: target, mapped: true}
}

// IsMapped reports whether the spec names its target explicitly.
func (l LinkSpec) IsMapped() bool {
	return l.mapped
}

// Resolve returns the repository-relative source and the tree-relative
// target.
func (l LinkSpec) Resolve() (source, target string) {
	if l.mapped {
		return l.source, l.target
	}
	return l.source, l.source
}

func (l LinkSpec) String() string {
	if l.mapped {
		return fmt.Sprintf("%s -> %s", l.source, l.target)
	}
	return l.source
}

func (l LinkSpec) validate() error {
	src, tgt := l.Resolve()
	if src == "" {
		return fmt.Errorf("link source cannot be empty")
	}
	if tgt == "" {
		return fmt.Errorf("link target for %q cannot be empty", src)
	}
	return nil
}
