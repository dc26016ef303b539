package converter

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

var (
	// ErrNoRoot is returned when a document holds no element at all.
	ErrNoRoot = errors.New("document has no root element")
	// ErrMultipleRoots is returned when a second top-level element follows
	// the root.
	ErrMultipleRoots = errors.New("document has more than one root element")
)

// Element represents a parsed XML element
type Element struct {
	Name       string
	Attributes []xml.Attr
	Children   []interface{} // *Element, string (CharData) or Comment
}

// Comment is the body of an XML comment node.
type Comment string

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if attrName(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Parse reads a whole XML document and returns its root element. Character
// data and comments are kept verbatim, in document order, so that later
// stages can tell whitespace-only text apart from real content. Documents
// declaring a non UTF-8 encoding are transcoded on the fly.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	var root *Element

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch se := token.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("failed to parse xml: %w: <%s>", ErrMultipleRoots, se.Name.Local)
			}
			el := &Element{Name: se.Name.Local}
			if len(se.Attr) > 0 {
				el.Attributes = append([]xml.Attr(nil), se.Attr...)
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end element %s", se.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.Children = append(current.Children, string(se))
			}

		case xml.Comment:
			if len(stack) > 0 {
				current := stack[len(stack)-1]
				current.Children = append(current.Children, Comment(se))
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}
