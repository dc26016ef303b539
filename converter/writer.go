package converter

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteSchema encodes s as the trait registry expects it: block mappings
// indented by two spaces, quoted info strings, single-quoted command ids and
// one flow mapping per parameter.
func WriteSchema(w io.Writer, s *Schema) error {
	firmwares := seq()
	for _, fw := range s.Firmwares {
		traits := seq()
		for _, tr := range fw.Traits {
			commands := seq()
			for _, c := range tr.Commands {
				params := seq()
				for _, p := range c.Params {
					pm := mapping(
						"name", plain(p.Name),
						"type", plain(p.Type),
						"unit", unit(p.Unit),
						"info", quoted(p.Info),
					)
					pm.Style = yaml.FlowStyle
					params.Content = append(params.Content, pm)
				}
				if len(params.Content) == 0 {
					params.Style = yaml.FlowStyle
				}
				commands.Content = append(commands.Content, mapping(
					"info", quoted(c.Info),
					"name", plain(c.Name),
					"name_id", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.NameID, Style: yaml.SingleQuotedStyle},
					"params", params,
				))
			}
			if len(commands.Content) == 0 {
				commands.Style = yaml.FlowStyle
			}
			traits.Content = append(traits.Content, mapping(
				"name", plain(tr.Name),
				"info", quoted(tr.Info),
				"kind", plain(tr.Kind),
				"commands", commands,
			))
		}
		firmwares.Content = append(firmwares.Content, mapping(
			"name", plain(fw.Name),
			"info", plain(fw.Info),
			"traits", traits,
		))
	}
	doc := mapping("firmwares", firmwares)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return enc.Close()
}

func seq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

// mapping builds a block mapping from alternating keys and values.
func mapping(kv ...interface{}) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv[i].(string)},
			kv[i+1].(*yaml.Node))
	}
	return m
}

// plain lets the encoder pick the style, quoting only when it must. Words
// that YAML 1.1 readers take for booleans or null are single-quoted.
func plain(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	if isYAML11Keyword(v) {
		n.Style = yaml.SingleQuotedStyle
	}
	return n
}

func isYAML11Keyword(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "n", "no", "on", "off", "true", "false", "null", "~":
		return true
	}
	return false
}

func quoted(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: yaml.DoubleQuotedStyle}
}

func unit(v string) *yaml.Node {
	if v == UnitUnspecified {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: v}
	}
	return plain(v)
}
