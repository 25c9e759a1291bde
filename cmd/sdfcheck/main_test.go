package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.sdf")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestRunValidDocument(t *testing.T) {
	path := writeDoc(t, `<sdf version="1.7">
		<world name="w">
			<model name="M"><link name="L"/></model>
		</world>
	</sdf>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, exitValid, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "validates")
}

func TestRunFrameDefects(t *testing.T) {
	path := writeDoc(t, `<sdf version="1.7">
		<world name="w">
			<frame name="self_cycle" attached_to="self_cycle"/>
		</world>
	</sdf>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stdout.String(), "frame-semantics defects")
	assert.Contains(t, stdout.String(), "frame-graph-cycle")
}

func TestRunLoadErrors(t *testing.T) {
	path := writeDoc(t, `<sdf version="1.7">
		<model name="m"><link name="L"/><link name="L"/></model>
	</sdf>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stdout.String(), "fails to load")
	assert.Contains(t, stdout.String(), "sdf-duplicate-name")
}

func TestRunYAMLFormat(t *testing.T) {
	path := writeDoc(t, `<sdf version="1.7">
		<world name="w">
			<frame name="F" attached_to="A"/>
		</world>
	</sdf>`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--format", "yaml", path}, &stdout, &stderr)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stdout.String(), "loaded: true")
	assert.Contains(t, stdout.String(), "frame_defects:")
}

func TestRunUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitUsageErr, run([]string{}, &stdout, &stderr))
	assert.Equal(t, exitUsageErr, run([]string{"--format", "json", writeDoc(t, `<sdf/>`)}, &stdout, &stderr))
}
