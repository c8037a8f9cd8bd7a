package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

type storeBackend struct {
	*render.Store
}

func (storeBackend) HitTest(x, y float64) (string, geometry.Vector3, bool) {
	return "", geometry.Vector3{}, false
}

func (storeBackend) Render() {}

func newSession(t *testing.T) (*Session, storeBackend) {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Seed = 7
	b := storeBackend{render.NewStore()}
	s, err := NewSession(cfg, b)
	require.NoError(t, err)
	return s, b
}

func loadMini(t *testing.T, s *Session) {
	t.Helper()
	st, err := pdb.ParseFile(filepath.Join("..", "..", "pkg", "pdb", "testdata", "mini.pdb"))
	require.NoError(t, err)
	s.SetStructure(st, "mini.pdb")
}

func TestPromptCreatesHelix(t *testing.T) {
	s, b := newSession(t)
	ctx := context.Background()

	s.AskHelix()
	require.NotNil(t, s.Prompt())
	assert.Equal(t, "5", s.Prompt().Fields[0].Value)

	s.Backspace()
	s.TypeRune('8')
	require.NoError(t, s.SubmitPrompt(ctx))
	assert.Nil(t, s.Prompt())

	els := s.Scene().Elements()
	require.Len(t, els, 1)
	assert.Equal(t, 8.0, els[0].Length)
	assert.Equal(t, "Alpha helices: 1, Beta sheets: 0, Connections: 0", s.Info())

	s.Sync()
	_, ok := b.Get("e1")
	assert.True(t, ok)
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	s, _ := newSession(t)

	s.AskSheet()
	s.NextField()
	s.Backspace()
	s.TypeRune('-')
	s.TypeRune('1')

	err := s.SubmitPrompt(context.Background())
	var inputErr *command.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "Width", inputErr.Field)

	assert.NotNil(t, s.Prompt(), "prompt stays open")
	assert.Zero(t, s.Scene().Len())
	assert.True(t, s.Status().Err)
}

func TestCancelPromptCreatesNothing(t *testing.T) {
	s, _ := newSession(t)
	s.AskSheet()
	s.CancelPrompt()
	assert.Nil(t, s.Prompt())
	require.NoError(t, s.SubmitPrompt(context.Background()))
	assert.Zero(t, s.Scene().Len())
}

func TestPreconditionShowsStatus(t *testing.T) {
	s, _ := newSession(t)

	err := s.Remove(context.Background())
	var pre *command.PreconditionError
	require.ErrorAs(t, err, &pre)

	st := s.Status()
	assert.True(t, st.Err)
	assert.Equal(t, "Select an element first.", st.Text)
}

func TestStatusExpires(t *testing.T) {
	s, _ := newSession(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Report(assert.AnError)
	assert.NotEmpty(t, s.Status().Text)

	now = now.Add(statusTimeout + time.Second)
	assert.Empty(t, s.Status().Text)
}

func TestSaveFileWritesScene(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()
	require.NoError(t, s.Run(ctx, command.AddSheet{Length: 4, Width: 2}))

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, s.SaveFile(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := export.Parse(data)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAtomOperationsTakePrecedenceWithAtomSelection(t *testing.T) {
	s, b := newSession(t)
	ctx := context.Background()
	loadMini(t, s)
	require.NoError(t, s.Run(ctx, command.AddHelix{Length: 3}))
	require.NoError(t, s.Run(ctx, command.Select{IDs: []scene.ElementID{"e1"}}))

	assert.True(t, s.Click(molecule.AtomPrimitiveID(2)))
	assert.Contains(t, s.StructureInfo(), "1 selected")

	require.NoError(t, s.Transform(ctx))
	i, _ := s.View().Index(2)
	assert.InDelta(t, 1.0, s.View().Structure().Atoms[i].Position.Y, 1e-9)

	el, _ := s.Scene().Element("e1")
	assert.Equal(t, geometry.NewVector3(1, 1, 1), el.Scale, "element untouched")

	require.NoError(t, s.Remove(ctx))
	assert.Empty(t, s.View().Selected())
	assert.Equal(t, 1, s.Scene().Len())

	s.Sync()
	_, ok := b.Get(molecule.AtomPrimitiveID(2))
	assert.False(t, ok, "hidden atom is not drawn")
	_, ok = b.Get("e1")
	assert.True(t, ok)
}

func TestClickIgnoresElements(t *testing.T) {
	s, _ := newSession(t)
	assert.False(t, s.Click("e1"))
	loadMini(t, s)
	assert.False(t, s.Click("e1"))
	assert.False(t, s.Click(molecule.AtomPrimitiveID(999)))
	assert.True(t, s.Status().Err)
}

func TestDemoChainWithoutStructure(t *testing.T) {
	s, _ := newSession(t)
	s.AddDemoChain()
	require.NotNil(t, s.View())
	assert.Equal(t, 5, s.View().Structure().AtomCount())
	assert.Equal(t, "demo: 5 atoms, 0 selected", s.StructureInfo())
}

func TestSpinAndRepresentation(t *testing.T) {
	s, _ := newSession(t)
	s.ToggleSpin()
	assert.False(t, s.Spinning())

	loadMini(t, s)
	s.ToggleSpin()
	assert.True(t, s.Spinning())

	s.SetRepresentation(molecule.Line)
	assert.Equal(t, molecule.Line, s.View().Style(0).Rep)
}

func TestExportStructure(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "atoms.json")

	err := s.ExportStructure(ctx, export.FileSink{Path: path})
	var pre *command.PreconditionError
	require.ErrorAs(t, err, &pre)

	loadMini(t, s)
	require.NoError(t, s.ExportStructure(ctx, export.FileSink{Path: path}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"resn"`)
}

func TestStructureInfoMeasuresSelectedAtoms(t *testing.T) {
	s, _ := newSession(t)
	loadMini(t, s)

	require.True(t, s.Click(molecule.AtomPrimitiveID(2)))
	require.True(t, s.Click(molecule.AtomPrimitiveID(6)))
	assert.Equal(t, "1ABC: 17 atoms, 2 selected, distance 3.800 Å", s.StructureInfo())

	require.True(t, s.Click(molecule.AtomPrimitiveID(10)))
	assert.Contains(t, s.StructureInfo(), "angle 180.0°")
	assert.Len(t, s.SelectedPositions(), 3)
}
