package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New(scene.WithSeed(7))
	_, err := s.Add(scene.KindHelix, scene.Params{Length: 5})
	require.NoError(t, err)
	_, err = s.Add(scene.KindSheet, scene.Params{Length: 5, Width: 2})
	require.NoError(t, err)
	return s
}

func TestSerializeEmptyScene(t *testing.T) {
	data, err := Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSerializeRecordLayout(t *testing.T) {
	s := newScene(t)
	rot := geometry.Around(geometry.AxisZ, geometry.Radians(45))
	require.NoError(t, s.Mutate("e1", scene.Mutation{Rotate: &rot}))

	data, err := Serialize(s.Elements())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {"), "document should be indented: %s", text)

	typeIdx := strings.Index(text, `"type"`)
	posIdx := strings.Index(text, `"position"`)
	rotIdx := strings.Index(text, `"rotation"`)
	scaleIdx := strings.Index(text, `"scale"`)
	colorIdx := strings.Index(text, `"color"`)
	assert.True(t, typeIdx < posIdx && posIdx < rotIdx && rotIdx < scaleIdx && scaleIdx < colorIdx)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "alpha-helix", raw[0]["type"])
	assert.Equal(t, "beta-sheet", raw[1]["type"])
	assert.Equal(t, "#00ff00", raw[0]["color"])
	assert.Equal(t, "#0000ff", raw[1]["color"])

	rotation := raw[0]["rotation"].(map[string]any)
	assert.Equal(t, "XYZ", rotation["order"])
	assert.InDelta(t, geometry.Radians(45), rotation["z"], 1e-12)
}

func TestSerializeOmitsConnections(t *testing.T) {
	s := newScene(t)
	_, err := s.Connect("e1", "e2")
	require.NoError(t, err)

	data, err := Serialize(s.Elements())
	require.NoError(t, err)
	records, err := Parse(data)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.NotContains(t, string(data), "c1")
}

func TestParseReadsSerializedDocument(t *testing.T) {
	s := newScene(t)
	elements := s.Elements()
	data, err := Serialize(elements)
	require.NoError(t, err)

	records, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Position.Vector3().ApproxEqual(elements[0].Position, 1e-12))
	assert.Equal(t, scene.Counts{Helices: 1, Sheets: 1}, Summary(records))
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":      "{",
		"object":        `{"type":"alpha-helix"}`,
		"null":          "null",
		"unknown type":  `[{"type":"coil"}]`,
		"bad color":     `[{"type":"alpha-helix","color":"green"}]`,
		"bad rot order": `[{"type":"alpha-helix","rotation":{"order":"ZYX"}}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}
