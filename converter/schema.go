package converter

import "log/slog"

// Fixed header of every generated schema.
const (
	FirmwareName = "mavlink"
	FirmwareInfo = "mavlink"
	TraitName    = "Mavlink"
	TraitKind    = "interface"
	TraitInfo    = "Commands to be executed by the MAV. They can be executed on user request, or as part of a mission script. If the action is used in a mission, the parameter mapping to the waypoint/mission message is as follows: Param 1, Param 2, Param 3, Param 4, X: Param 5, Y:Param 6, Z:Param 7. This command list is similar what ARINC 424 is for commercial aircraft: A data format how to interpret waypoint/mission data."

	// ParamType is the type given to every command parameter.
	ParamType = "f32"
	// UnitUnspecified is the unit sentinel written for every parameter.
	UnitUnspecified = "~"
)

// Schema is the document consumed by the trait registry.
type Schema struct {
	Firmwares []Firmware
}

type Firmware struct {
	Name   string
	Info   string
	Traits []Trait
}

type Trait struct {
	Name     string
	Info     string
	Kind     string
	Commands []Command
}

// Command is one entry of the command enumeration.
type Command struct {
	Info   string
	Name   string
	NameID string
	Params []Param
}

type Param struct {
	Name string
	Type string
	Unit string
	Info string
}

// Stats counts what a refit pass produced and what it left out.
type Stats struct {
	Commands int
	Params   int
	Skipped  int
}

// NewSchema wraps commands in the fixed firmware and trait header.
func NewSchema(commands []Command) *Schema {
	return &Schema{
		Firmwares: []Firmware{{
			Name: FirmwareName,
			Info: FirmwareInfo,
			Traits: []Trait{{
				Name:     TraitName,
				Info:     TraitInfo,
				Kind:     TraitKind,
				Commands: commands,
			}},
		}},
	}
}

// Commands returns the command list of the single trait.
func (s *Schema) Commands() []Command {
	if s == nil || len(s.Firmwares) == 0 || len(s.Firmwares[0].Traits) == 0 {
		return nil
	}
	return s.Firmwares[0].Traits[0].Commands
}

func newParam(label, index, info string) Param {
	return Param{
		Name: label + "_" + index,
		Type: ParamType,
		Unit: UnitUnspecified,
		Info: info,
	}
}

// FromGeneric builds the schema straight from the generic records of the
// target enum. Each entry record becomes a command; its description child
// supplies the info and each param child a parameter. Records that are not
// entries, and entry children that are neither description nor param, are
// counted as skipped.
func FromGeneric(nodes []GenericNode, opts Options) (*Schema, Stats) {
	log := opts.logger()
	var stats Stats
	var commands []Command

	for _, n := range nodes {
		switch n.Name {
		case opts.EntryTag:
		case TextNodeName, CommentNodeName, opts.DescriptionTag:
			continue
		default:
			log.Debug("skipping enum child", "name", n.Name)
			stats.Skipped++
			continue
		}

		name, ok := n.Attr("name")
		if !ok {
			log.Debug("skipping entry without name", "attributes", len(n.Attributes))
			stats.Skipped++
			continue
		}
		id, _ := n.Attr("value")
		cmd := Command{Name: name, NameID: id, Params: []Param{}}

		described := false
		for _, c := range n.Children {
			switch {
			case c.Name == opts.DescriptionTag && !described:
				cmd.Info = c.Text
				described = true
			case c.Name == opts.ParamTag:
				index, ok := c.Attr("index")
				if !ok {
					log.Debug("skipping param without index", "command", name)
					stats.Skipped++
					continue
				}
				cmd.Params = append(cmd.Params, newParam(c.Name, index, c.Text))
				stats.Params++
			default:
				log.Debug("skipping entry child", "command", name, "child", c.Name)
				stats.Skipped++
			}
		}

		commands = append(commands, cmd)
		stats.Commands++
	}

	if commands == nil {
		commands = []Command{}
	}
	return NewSchema(commands), stats
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
