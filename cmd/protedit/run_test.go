package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/config"
)

func newTestEditor(t *testing.T) *command.Editor {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Seed = 3
	editor, err := newEditor(cfg)
	require.NoError(t, err)
	return editor
}

func parse(t *testing.T, script string) []command.Command {
	t.Helper()
	cmds, err := command.ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	return cmds
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	keepGoing = false
	editor := newTestEditor(t)
	var stdout, stderr bytes.Buffer

	failed := execute(context.Background(), editor, parse(t, "add-helix 3\nconnect\nadd-sheet\n"), &stdout, &stderr)

	assert.Equal(t, 1, failed)
	assert.Equal(t, "2 connect: Please select exactly two elements to connect.\n", stderr.String())
	assert.Equal(t, 1, editor.Scene().Len())
}

func TestExecuteKeepGoing(t *testing.T) {
	keepGoing = true
	t.Cleanup(func() { keepGoing = false })
	editor := newTestEditor(t)
	var stdout, stderr bytes.Buffer

	failed := execute(context.Background(), editor, parse(t, "remove\nadd-helix\nadd-sheet\nselect e1 e2\nconnect\n"), &stdout, &stderr)

	assert.Equal(t, 1, failed)
	assert.Contains(t, stderr.String(), "1 remove: Select an element first.")
	assert.Equal(t, "Alpha helices: 1, Beta sheets: 1, Connections: 1", editor.Scene().Counts().String())
}

func TestWriteSnapshot(t *testing.T) {
	editor := newTestEditor(t)
	var sink bytes.Buffer
	execute(context.Background(), editor, parse(t, "add-helix\nadd-sheet\n"), &sink, &sink)

	path := filepath.Join(t.TempDir(), "scene.png")
	require.NoError(t, writeSnapshot(editor, path, 160, 120))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}
