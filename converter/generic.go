package converter

import "strings"

const (
	// TextNodeName names the generic record of a character data node.
	TextNodeName = "#text"
	// CommentNodeName names the generic record of a comment node.
	CommentNodeName = "#comment"
)

// Attribute is a single name/value pair, kept in source order.
type Attribute struct {
	Name  string
	Value string
}

// GenericNode is the schema-agnostic form of an XML node. Attributes, Text
// and Children are left empty when the source has no such content and are
// then omitted from every serialized form.
type GenericNode struct {
	Name       string
	Attributes []Attribute
	Text       string
	Children   []GenericNode
}

// Attr returns the value of the named attribute and whether it is set.
func (n GenericNode) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ToGeneric converts one child of an element into a GenericNode. Character
// data and comments become bare "#text" and "#comment" records.
func ToGeneric(child interface{}) GenericNode {
	switch c := child.(type) {
	case *Element:
		return elementToGeneric(c)
	case Comment:
		return GenericNode{Name: CommentNodeName}
	default:
		return GenericNode{Name: TextNodeName}
	}
}

// GenericSequence converts a child sequence, text and comments included,
// preserving document order.
func GenericSequence(children []interface{}) []GenericNode {
	out := make([]GenericNode, 0, len(children))
	for _, c := range children {
		out = append(out, ToGeneric(c))
	}
	return out
}

func elementToGeneric(e *Element) GenericNode {
	n := GenericNode{Name: e.Name}
	for _, a := range e.Attributes {
		n.Attributes = append(n.Attributes, Attribute{Name: attrName(a.Name), Value: a.Value})
	}

	var text strings.Builder
	for _, c := range e.Children {
		if s, ok := c.(string); ok && strings.TrimSpace(s) != "" {
			text.WriteString(s)
		}
	}
	n.Text = text.String()

	for _, c := range e.Children {
		if child, ok := c.(*Element); ok {
			n.Children = append(n.Children, elementToGeneric(child))
		}
	}
	return n
}
