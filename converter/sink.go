package converter

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteGeneric renders nodes as a YAML sequence, one logical record per line.
//
// A node without attributes and children is written as a flow mapping on a
// single line. Any other node is a block mapping whose keys come in sorted
// order (attributes, children, name, text); its attributes are a flow mapping
// and its children an unindented block sequence. The refit grammar in
// refit.go reads this layout line by line.
func WriteGeneric(w io.Writer, nodes []GenericNode) error {
	bw := bufio.NewWriter(w)
	if len(nodes) == 0 {
		bw.WriteString("[]\n")
		return bw.Flush()
	}
	for _, n := range nodes {
		if err := writeGenericNode(bw, n, ""); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RenderGeneric is WriteGeneric into a string.
func RenderGeneric(nodes []GenericNode) (string, error) {
	var buf bytes.Buffer
	if err := WriteGeneric(&buf, nodes); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeGenericNode(w *bufio.Writer, n GenericNode, indent string) error {
	if len(n.Attributes) == 0 && len(n.Children) == 0 {
		fields := []string{"name", n.Name}
		if n.Text != "" {
			fields = append(fields, "text", n.Text)
		}
		flow, err := flowMapping(fields)
		if err != nil {
			return err
		}
		w.WriteString(indent + "- " + flow + "\n")
		return nil
	}

	lead := indent + "- "
	pad := indent + "  "
	next := func() string {
		p := lead
		lead = pad
		return p
	}

	if len(n.Attributes) > 0 {
		attrs := append([]Attribute(nil), n.Attributes...)
		sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		fields := make([]string, 0, 2*len(attrs))
		for _, a := range attrs {
			fields = append(fields, a.Name, a.Value)
		}
		flow, err := flowMapping(fields)
		if err != nil {
			return err
		}
		w.WriteString(next() + "attributes: " + flow + "\n")
	}
	if len(n.Children) > 0 {
		w.WriteString(next() + "children:\n")
		for _, c := range n.Children {
			if err := writeGenericNode(w, c, pad); err != nil {
				return err
			}
		}
	}

	name, err := renderScalar(n.Name)
	if err != nil {
		return err
	}
	w.WriteString(next() + "name: " + name + "\n")

	if n.Text != "" {
		text, err := renderScalar(n.Text)
		if err != nil {
			return err
		}
		w.WriteString(next() + "text: " + text + "\n")
	}
	return nil
}

// flowMapping renders alternating key/value strings as a one-line flow mapping.
func flowMapping(kv []string) (string, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content, scalarNode(kv[i]), scalarNode(kv[i+1]))
	}
	return marshalLine(m)
}

func renderScalar(v string) (string, error) {
	return marshalLine(scalarNode(v))
}

func marshalLine(n *yaml.Node) (string, error) {
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to render yaml: %w", err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// scalarNode builds a string scalar. Values that would not read back as the
// same plain string are single-quoted; values holding line breaks or tabs are
// double-quoted so they stay on one line.
func scalarNode(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	switch {
	case strings.ContainsAny(v, "\n\r\t"):
		n.Style = yaml.DoubleQuotedStyle
	case !readsBackPlain(v):
		n.Style = yaml.SingleQuotedStyle
	}
	return n
}

func readsBackPlain(v string) bool {
	if v == "" || strings.ContainsAny(v, "{}[],") {
		return false
	}
	var out interface{}
	if err := yaml.Unmarshal([]byte(v), &out); err != nil {
		return false
	}
	s, ok := out.(string)
	return ok && s == v
}
