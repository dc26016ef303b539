package converter

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetNotFound is returned when no element matches the target.
	ErrTargetNotFound = errors.New("no target found")
	// ErrAmbiguousTarget is returned when more than one element matches.
	ErrAmbiguousTarget = errors.New("ambiguous target")
)

// FindEnum walks the tree rooted at root depth-first, root included, and
// returns the only element whose tag is tag and whose "name" attribute is
// name. Zero or several matches are reported as errors.
func FindEnum(root *Element, tag, name string) (*Element, error) {
	matches := findAll(root, tag, name, nil)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: <%s name=%q>", ErrTargetNotFound, tag, name)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %d elements match <%s name=%q>", ErrAmbiguousTarget, len(matches), tag, name)
	}
}

func findAll(e *Element, tag, name string, acc []*Element) []*Element {
	if e == nil {
		return acc
	}
	if e.Name == tag {
		if v, ok := e.Attr("name"); ok && v == name {
			acc = append(acc, e)
		}
	}
	for _, c := range e.Children {
		if child, ok := c.(*Element); ok {
			acc = findAll(child, tag, name, acc)
		}
	}
	return acc
}
