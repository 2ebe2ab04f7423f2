package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/autolink-go/internal/config"
)

func TestOpenSource(t *testing.T) {
	_, _, err := openSource(config.Config{})
	assert.Error(t, err)

	_, _, err = openSource(config.Config{Entities: "a.yaml", Database: "b.db"})
	assert.Error(t, err)

	src, closeSource, err := openSource(config.Config{Entities: "things.yaml"})
	require.NoError(t, err)
	assert.NotNil(t, src)
	closeSource()

	src, closeSource, err = openSource(config.Config{Database: filepath.Join(t.TempDir(), "notes.db")})
	require.NoError(t, err)
	assert.NotNil(t, src)
	closeSource()
}

func TestReadInput(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("from stdin"))

	got, err := readInput(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	got, err = readInput(cmd, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	_, err = readInput(cmd, []string{filepath.Join(t.TempDir(), "missing.md")})
	assert.Error(t, err)
}

func TestRunAutolink(t *testing.T) {
	dir := t.TempDir()
	things := filepath.Join(dir, "things.yaml")
	require.NoError(t, os.WriteFile(things, []byte("things:\n  - key: n1\n    alias: Rust\n  - key: n2\n    alias: Go\n"), 0o644))

	config.C = config.Config{Entities: things, Concurrency: 2}
	defer func() { config.C = config.Config{} }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("I love Rust and Go!\n```\nGo\n```\n"))
	cmd.SetOut(&out)

	require.NoError(t, runAutolink(cmd, nil))
	assert.Equal(t, "I love [Rust](n1) and [Go](n2)!\n```\nGo\n```\n", out.String())
}
