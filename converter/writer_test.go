package converter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteSchema_Lines(t *testing.T) {
	s := NewSchema([]Command{{
		Info:   "Navigate to waypoint.",
		Name:   "MAV_CMD_NAV_WAYPOINT",
		NameID: "16",
		Params: []Param{newParam("param", "1", "Hold time")},
	}})

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "firmwares:\n  - name: mavlink\n    info: mavlink\n    traits:\n      - name: Mavlink\n"))
	assert.Contains(t, out, "\n        kind: interface\n        commands:\n")
	assert.Contains(t, out, "\n          - info: \"Navigate to waypoint.\"\n")
	assert.Contains(t, out, "\n            name: MAV_CMD_NAV_WAYPOINT\n")
	assert.Contains(t, out, "\n            name_id: '16'\n")
	assert.Contains(t, out, "\n              - {name: param_1, type: f32, unit: ~, info: \"Hold time\"}\n")
}

func TestWriteSchema_Decodes(t *testing.T) {
	s := NewSchema([]Command{
		{Name: "A", NameID: "1", Info: `quote " and: colon`, Params: []Param{}},
		{Name: "B", NameID: "2", Params: []Param{newParam("param", "7", "")}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, s))

	var doc struct {
		Firmwares []struct {
			Name   string
			Traits []struct {
				Name     string
				Kind     string
				Info     string
				Commands []struct {
					Info   string
					Name   string
					NameID string `yaml:"name_id"`
					Params []map[string]interface{}
				}
			}
		}
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	trait := doc.Firmwares[0].Traits[0]
	assert.Equal(t, TraitInfo, trait.Info)
	require.Len(t, trait.Commands, 2)
	assert.Equal(t, `quote " and: colon`, trait.Commands[0].Info)
	assert.Equal(t, "1", trait.Commands[0].NameID)
	assert.Empty(t, trait.Commands[0].Params)
	assert.Contains(t, buf.String(), "params: []")

	p := trait.Commands[1].Params[0]
	assert.Equal(t, "param_7", p["name"])
	assert.Equal(t, "f32", p["type"])
	assert.Nil(t, p["unit"])
	assert.Contains(t, p, "unit")
}

func TestWriteSchema_NoCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, NewSchema([]Command{})))
	assert.Contains(t, buf.String(), "commands: []")
}

func TestWriteSchema_QuotesYAML11Keywords(t *testing.T) {
	s := NewSchema([]Command{{
		Name:   "yes",
		NameID: "1",
		Params: []Param{newParam("on", "1", "")},
	}, {
		Name:   "MAV_CMD_DO_SET_MODE",
		NameID: "2",
		Params: []Param{},
	}})

	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "\n            name: 'yes'\n")
	assert.Contains(t, out, "{name: on_1, type: f32")
	assert.Contains(t, out, "\n            name: MAV_CMD_DO_SET_MODE\n")

	for _, w := range []string{"Y", "No", "OFF", "true", "Null", "~"} {
		assert.True(t, isYAML11Keyword(w), w)
	}
	assert.False(t, isYAML11Keyword("mavlink"))
}
