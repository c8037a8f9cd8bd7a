package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/philipparndt/protedit/internal/export"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	doc []byte
	err error
}

func (m *memorySink) Deliver(_ context.Context, doc []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.doc = doc
	return "stored", nil
}

func newEditor() *Editor {
	return NewEditor(scene.New(scene.WithSeed(42)), selection.New(selection.DefaultHighlight))
}

func dispatch(t *testing.T, e *Editor, cmds ...Command) Result {
	t.Helper()
	var res Result
	for _, cmd := range cmds {
		var err error
		res, err = e.Dispatch(context.Background(), cmd)
		require.NoError(t, err, "dispatching %s", cmd.Name())
	}
	return res
}

func TestConnectScenarioExportsTwoRecords(t *testing.T) {
	e := newEditor()
	sink := &memorySink{}

	res := dispatch(t, e,
		AddHelix{Length: 5},
		AddSheet{Length: 5, Width: 2},
		Select{IDs: []scene.ElementID{"e1", "e2"}},
		ConnectSelected{},
		Export{Sink: sink},
	)

	assert.Equal(t, "stored", res.Message)
	assert.Equal(t, 1, res.Counts.Connections)
	assert.Equal(t, "Alpha helices: 1, Beta sheets: 1, Connections: 1", res.Counts.String())

	records, err := export.Parse(sink.doc)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, scene.KindHelix, records[0].Type)
	assert.Equal(t, scene.KindSheet, records[1].Type)
}

func TestRemoveScenarioExportsNothing(t *testing.T) {
	e := newEditor()
	sink := &memorySink{}

	dispatch(t, e,
		AddHelix{Length: 5},
		Toggle{ID: "e1"},
		RemoveSelected{},
		Export{Sink: sink},
	)

	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal(sink.doc, &raw))
	assert.Empty(t, raw)
	assert.Equal(t, 0, e.Selection().Len())
}

func TestConnectRequiresExactlyTwo(t *testing.T) {
	for _, selected := range [][]scene.ElementID{nil, {"e1"}, {"e1", "e2", "e3"}} {
		e := newEditor()
		dispatch(t, e, AddHelix{}, AddHelix{}, AddSheet{})
		dispatch(t, e, Select{IDs: selected})
		before := e.Scene().Elements()

		_, err := e.Dispatch(context.Background(), ConnectSelected{})

		var pe *PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "Please select exactly two elements to connect.", pe.Message)
		assert.Empty(t, e.Scene().Connections())
		assert.Equal(t, before, e.Scene().Elements())
		assert.Equal(t, len(selected), e.Selection().Len())
	}
}

func TestSelectionCommandsNeedSelection(t *testing.T) {
	for _, cmd := range []Command{RemoveSelected{}, RotateSelected{}, RecolorSelected{}, ScaleSelected{}} {
		t.Run(cmd.Name(), func(t *testing.T) {
			e := newEditor()
			dispatch(t, e, AddHelix{})
			before := e.Scene().Elements()

			_, err := e.Dispatch(context.Background(), cmd)

			var pe *PreconditionError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "Select an element first.", pe.Error())
			assert.Equal(t, before, e.Scene().Elements())
		})
	}
}

func TestRotateSelectedAddsFortyFiveDegrees(t *testing.T) {
	e := newEditor()
	dispatch(t, e, AddHelix{}, AddSheet{}, Select{IDs: []scene.ElementID{"e1"}}, RotateSelected{}, RotateSelected{})

	helix, _ := e.Scene().Element("e1")
	sheet, _ := e.Scene().Element("e2")
	assert.InDelta(t, geometry.Radians(90), helix.Rotation.Z, 1e-12)
	assert.Zero(t, sheet.Rotation.Z)
	assert.True(t, e.Selection().Contains("e1"), "rotate keeps the selection")
}

func TestRecolorSelected(t *testing.T) {
	e := newEditor()
	magenta := scene.MustParseColor("#ff00ff")
	dispatch(t, e, AddHelix{}, AddHelix{}, Select{IDs: []scene.ElementID{"e2"}}, RecolorSelected{Color: &magenta})

	first, _ := e.Scene().Element("e1")
	second, _ := e.Scene().Element("e2")
	assert.Equal(t, scene.MustParseColor("#00ff00"), first.BaseColor)
	assert.Equal(t, magenta, second.BaseColor)
	assert.Equal(t, selection.DefaultHighlight, e.Selection().DisplayColor("e2", second.BaseColor))

	dispatch(t, e, RecolorSelected{})
	second, _ = e.Scene().Element("e2")
	assert.NotEqual(t, magenta, second.BaseColor)
}

func TestScaleSelectedIsUniformInRange(t *testing.T) {
	e := newEditor()
	dispatch(t, e, AddSheet{}, Toggle{ID: "e1"})
	for range 20 {
		dispatch(t, e, ScaleSelected{})
		el, _ := e.Scene().Element("e1")
		assert.GreaterOrEqual(t, el.Scale.X, 1.0)
		assert.Less(t, el.Scale.X, 2.0)
		assert.Equal(t, el.Scale.X, el.Scale.Y)
		assert.Equal(t, el.Scale.X, el.Scale.Z)
	}
}

func TestRemoveCascadesConnections(t *testing.T) {
	e := newEditor()
	dispatch(t, e,
		AddHelix{}, AddHelix{}, AddSheet{},
		Select{IDs: []scene.ElementID{"e1", "e2"}}, ConnectSelected{},
		Select{IDs: []scene.ElementID{"e2", "e3"}}, ConnectSelected{},
	)
	res := dispatch(t, e, Toggle{ID: "e1"}, RemoveSelected{})

	assert.Equal(t, 2, e.Scene().Len())
	assert.Equal(t, 1, res.Counts.Connections)
	conns := e.Scene().Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, scene.ElementID("e2"), conns[0].A)
}

func TestUnknownReferencesAreReported(t *testing.T) {
	e := newEditor()
	dispatch(t, e, AddHelix{})

	_, err := e.Dispatch(context.Background(), Toggle{ID: "e9"})
	assert.ErrorIs(t, err, scene.ErrUnknownElement)

	_, err = e.Dispatch(context.Background(), Select{IDs: []scene.ElementID{"e1", "e9"}})
	assert.ErrorIs(t, err, scene.ErrUnknownElement)
	assert.Equal(t, 0, e.Selection().Len())
}

func TestAddRejectsInvalidSize(t *testing.T) {
	e := newEditor()
	_, err := e.Dispatch(context.Background(), AddSheet{Length: -1})
	assert.ErrorIs(t, err, scene.ErrInvalidParams)
	assert.Equal(t, 0, e.Scene().Len())
}

func TestExportFailureKeepsState(t *testing.T) {
	e := newEditor()
	dispatch(t, e, AddHelix{}, Toggle{ID: "e1"})
	boom := errors.New("connection refused")

	_, err := e.Dispatch(context.Background(), Export{Sink: &memorySink{err: boom}})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, e.Scene().Len())
	assert.True(t, e.Selection().Contains("e1"))

	_, err = e.Dispatch(context.Background(), Export{})
	assert.Error(t, err)
}

func TestDispatchRejectsNil(t *testing.T) {
	_, err := newEditor().Dispatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestStaleSelectionLeavesSceneUnchanged(t *testing.T) {
	e := newEditor()
	dispatch(t, e, AddHelix{}, AddHelix{})
	before := e.Scene().Elements()

	e.Selection().SetExactly("e1", "e9", "e2")
	for _, cmd := range []Command{RotateSelected{}, RecolorSelected{}, ScaleSelected{}} {
		_, err := e.Dispatch(context.Background(), cmd)
		assert.ErrorIs(t, err, scene.ErrUnknownElement, cmd.Name())
	}
	assert.Equal(t, before, e.Scene().Elements())
}
