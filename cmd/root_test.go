package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Usage(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.yaml")

	tests := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"one", []string{"in.xml"}},
		{"three", []string{"in.xml", dst, "extra"}},
		{"unknown flag", []string{"--verbose", "in.xml", dst}},
		{"help", []string{"-h"}},
		{"long help", []string{"--help"}},
		{"help after args", []string{"in.xml", dst, "--help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(tt.args, &stdout, &stderr)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stdout.String(), "Usage: mavtraits <source_xml_path> <destination_path>")
			_, err := os.Stat(dst)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestRun_Converts(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "mavlink.yaml")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"../converter/testdata/common_cmd.xml", dst}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	expected, err := os.ReadFile("../converter/testdata/common_cmd_schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(got))
	assert.Contains(t, stderr.String(), "msg=converted")
}

func TestRun_MissingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.xml")
	require.NoError(t, os.WriteFile(src, []byte(`<mavlink><enum name="MAV_FRAME"/></mavlink>`), 0644))
	dst := filepath.Join(dir, "out.yaml")

	var stdout, stderr bytes.Buffer
	code := Run([]string{src, dst}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "no target found")
	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_MalformedSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(src, []byte(`<mavlink><enum name="MAV_CMD">`), 0644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{src, filepath.Join(dir, "out.yaml")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "failed to parse xml")
}
