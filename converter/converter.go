package converter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Mode selects how the generic records are refit into the schema.
type Mode int

const (
	// ModeStructural reads commands straight from the generic tree.
	ModeStructural Mode = iota
	// ModeLines dumps the generic tree to the destination, reads it back
	// and refits it line by line before overwriting the destination.
	ModeLines
)

func (m Mode) String() string {
	switch m {
	case ModeStructural:
		return "structural"
	case ModeLines:
		return "lines"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options configures a Converter.
type Options struct {
	// TargetTag and TargetName identify the enumeration to convert.
	TargetTag  string
	TargetName string

	EntryTag       string
	DescriptionTag string
	ParamTag       string

	Mode   Mode
	Logger *slog.Logger
}

// DefaultOptions targets the MAV_CMD enumeration of a MAVLink dialect.
func DefaultOptions() Options {
	return Options{
		TargetTag:      "enum",
		TargetName:     "MAV_CMD",
		EntryTag:       "entry",
		DescriptionTag: "description",
		ParamTag:       "param",
		Mode:           ModeStructural,
	}
}

func (o Options) Validate() error {
	if o.TargetTag == "" {
		return errors.New("target tag is required")
	}
	if o.TargetName == "" {
		return errors.New("target name is required")
	}
	if o.EntryTag == "" || o.DescriptionTag == "" || o.ParamTag == "" {
		return errors.New("entry, description and param tags are required")
	}
	switch o.Mode {
	case ModeStructural, ModeLines:
	default:
		return fmt.Errorf("unknown mode %s", o.Mode)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger()
	}
	return o.Logger
}

// Converter turns a command dictionary into a trait schema.
type Converter struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Converter{opts: opts, log: opts.logger()}, nil
}

// Generic parses the source and returns the generic records of the target
// enumeration's children.
func (c *Converter) Generic(r io.Reader) ([]GenericNode, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	target, err := FindEnum(root, c.opts.TargetTag, c.opts.TargetName)
	if err != nil {
		return nil, err
	}
	return GenericSequence(target.Children), nil
}

// Convert reads a source document and returns its schema. In line mode the
// generic dump is kept in memory.
func (c *Converter) Convert(r io.Reader) (*Schema, Stats, error) {
	nodes, err := c.Generic(r)
	if err != nil {
		return nil, Stats{}, err
	}
	if c.opts.Mode == ModeStructural {
		s, stats := FromGeneric(nodes, c.opts)
		return s, stats, nil
	}
	dump, err := RenderGeneric(nodes)
	if err != nil {
		return nil, Stats{}, err
	}
	s, stats := RefitLines(splitLines(dump), c.log)
	return s, stats, nil
}

// ConvertFile converts the document at src and writes the schema to dst,
// replacing its contents. Nothing is written when the source cannot be
// parsed or holds no single target.
func (c *Converter) ConvertFile(src, dst string) (Stats, error) {
	f, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	nodes, err := c.Generic(f)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", src, err)
	}

	var s *Schema
	var stats Stats
	switch c.opts.Mode {
	case ModeStructural:
		s, stats = FromGeneric(nodes, c.opts)
	case ModeLines:
		lines, err := dumpAndReadBack(dst, nodes)
		if err != nil {
			return Stats{}, err
		}
		s, stats = RefitLines(lines, c.log)
	}

	var buf bytes.Buffer
	if err := WriteSchema(&buf, s); err != nil {
		return Stats{}, err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		return Stats{}, fmt.Errorf("failed to write schema: %w", err)
	}

	c.log.Info("converted",
		"source", src,
		"destination", dst,
		"mode", c.opts.Mode.String(),
		"commands", stats.Commands,
		"params", stats.Params,
		"skipped", stats.Skipped,
	)
	return stats, nil
}

// dumpAndReadBack writes the generic dump to path, which doubles as the
// scratch file, and returns its lines.
func dumpAndReadBack(path string, nodes []GenericNode) ([]string, error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dump: %w", err)
	}
	if err := WriteGeneric(out, nodes); err != nil {
		out.Close()
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to write scratch dump: %w", err)
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen scratch dump: %w", err)
	}
	defer in.Close()

	var lines []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scratch dump: %w", err)
	}
	return lines, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
