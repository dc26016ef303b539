package converter

import (
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// Markers of lines that carry no information for the refit pass.
var filterMarkers = []string{
	"name: '" + TextNodeName + "'",
	"name: entry",
	"name: '" + CommentNodeName + "'",
	"children",
}

// Line classes of the generic dump written by WriteGeneric.
const (
	enumDescriptionPrefix = "- {name: description, text:"
	commandPrefix         = "- attributes: {"
	commandInfoPrefix     = "  - {name: description"
	paramPrefix           = "  - attributes:"
	paramLabelPrefix      = "    name: "
	paramInfoPrefix       = "    text: "
)

// FilterLines drops every line holding one of the filter markers and keeps
// the order of the rest.
func FilterLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if !hasFilterMarker(l) {
			out = append(out, l)
		}
	}
	return out
}

func hasFilterMarker(line string) bool {
	for _, m := range filterMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// lineFields is what one line of the generic dump can hold once its
// indentation and sequence dash are stripped.
type lineFields struct {
	Name       string            `yaml:"name"`
	Text       string            `yaml:"text"`
	Attributes map[string]string `yaml:"attributes"`
}

func decodeLine(line string) (lineFields, bool) {
	s := strings.TrimLeft(line, " ")
	s = strings.TrimPrefix(s, "- ")
	var f lineFields
	if err := yaml.Unmarshal([]byte(s), &f); err != nil {
		return lineFields{}, false
	}
	return f, true
}

// RefitLines rebuilds the schema from the lines of a generic dump in a
// single pass. Lines are filtered first, then classified by prefix:
//
//   - an enum description line is recognised and ignored,
//   - a command line opens a command; its info comes from the description
//     line right after it,
//   - a param line adds a parameter to the open command; its label is the
//     name on the next line and its info the text on the line after,
//   - anything else is skipped.
func RefitLines(lines []string, log *slog.Logger) (*Schema, Stats) {
	if log == nil {
		log = discardLogger()
	}
	f := FilterLines(lines)

	var stats Stats
	commands := []Command{}
	current := -1

	at := func(i int, prefix string) (lineFields, bool) {
		if i >= len(f) || !strings.HasPrefix(f[i], prefix) {
			return lineFields{}, false
		}
		return decodeLine(f[i])
	}
	skip := func(i int, reason string) {
		log.Debug("skipping line", "line", i+1, "reason", reason, "text", f[i])
		stats.Skipped++
	}

	for i := 0; i < len(f); i++ {
		line := f[i]
		switch {
		case strings.HasPrefix(line, enumDescriptionPrefix):
			// The enum description is not carried into the schema.

		case strings.HasPrefix(line, commandPrefix):
			fields, ok := decodeLine(line)
			name, named := fields.Attributes["name"]
			if !ok || !named {
				current = -1
				skip(i, "command without name")
				continue
			}
			cmd := Command{Name: name, NameID: fields.Attributes["value"], Params: []Param{}}
			if desc, ok := at(i+1, commandInfoPrefix); ok && desc.Name == "description" {
				cmd.Info = desc.Text
				i++
			}
			commands = append(commands, cmd)
			current = len(commands) - 1
			stats.Commands++

		case strings.HasPrefix(line, paramPrefix):
			fields, ok := decodeLine(line)
			index, indexed := fields.Attributes["index"]
			if !ok || !indexed {
				skip(i, "param without index")
				continue
			}
			if current < 0 {
				skip(i, "param outside of a command")
				continue
			}
			label, ok := at(i+1, paramLabelPrefix)
			if !ok {
				skip(i, "param without label")
				continue
			}
			i++
			info, ok := at(i+1, paramInfoPrefix)
			if ok {
				i++
			}
			commands[current].Params = append(commands[current].Params, newParam(label.Name, index, info.Text))
			stats.Params++

		default:
			skip(i, "unmatched")
		}
	}

	return NewSchema(commands), stats
}
