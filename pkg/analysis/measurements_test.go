package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

func loadMini(t *testing.T) *pdb.Structure {
	t.Helper()
	s, err := pdb.ParseFile(filepath.Join("..", "pdb", "testdata", "mini.pdb"))
	require.NoError(t, err)
	return s
}

func TestAnalyzeStructure(t *testing.T) {
	result := AnalyzeStructure(loadMini(t))

	assert.Equal(t, 17, result.AtomCount)
	assert.Equal(t, 1, result.HeteroCount)
	assert.Equal(t, 5, result.ResidueCount)
	assert.Equal(t, 2, result.ChainCount)
	assert.Equal(t, 2, result.HelixResidues)
	assert.Equal(t, 1, result.SheetResidues)

	require.Len(t, result.AllSpacings, 3)
	assert.InDelta(t, 3.8, result.MinSpacing, 1e-9)
	assert.InDelta(t, 3.8, result.MaxSpacing, 1e-9)
	assert.InDelta(t, 3.8, result.AvgSpacing, 1e-9)
	assert.Equal(t, SpacingInfo{Chain: "A", From: 2, To: 6, Length: result.AllSpacings[0].Length}, result.AllSpacings[0])

	assert.InDelta(t, 21.2, result.Dimensions.X, 1e-9)
	assert.Empty(t, FindChainBreaks(result, ChainBreak))
}

func TestAnalyzeEmptyStructure(t *testing.T) {
	result := AnalyzeStructure(&pdb.Structure{})
	assert.Zero(t, result.AtomCount)
	assert.Zero(t, result.Volume)
	assert.Zero(t, result.MinSpacing)
	assert.Empty(t, FindLongestSpacings(result, 3))
}

func TestFindChainBreaks(t *testing.T) {
	s := loadMini(t)
	s.Atoms[13].Position = geometry.NewVector3(30, 0, 0) // CA of GLY 4

	result := AnalyzeStructure(s)
	breaks := FindChainBreaks(result, ChainBreak)
	require.Len(t, breaks, 1)
	assert.Equal(t, 10, breaks[0].From)
	assert.Equal(t, 14, breaks[0].To)

	longest := FindLongestSpacings(result, 10)
	require.Len(t, longest, 3)
	assert.Equal(t, 14, longest[0].To)
}

func TestAngle(t *testing.T) {
	origin := geometry.NewVector3(0, 0, 0)
	x := geometry.NewVector3(1, 0, 0)
	y := geometry.NewVector3(0, 2, 0)

	assert.InDelta(t, 90.0, Angle(x, origin, y), 1e-9)
	assert.InDelta(t, 180.0, Angle(x, origin, x.Mul(-1)), 1e-9)
	assert.Zero(t, Angle(origin, origin, y))
}

func TestMeasureAtoms(t *testing.T) {
	s := loadMini(t)

	got, err := MeasureAtoms(s, 2, 6)
	require.NoError(t, err)
	assert.Equal(t, "distance 3.800 Å", got)

	got, err = MeasureAtoms(s, 2, 6, 10)
	require.NoError(t, err)
	assert.Equal(t, "angle 180.0°", got)

	_, err = MeasureAtoms(s, 2)
	assert.Error(t, err)
	_, err = MeasureAtoms(s, 2, 999)
	assert.Error(t, err)
}

func TestFindNearestAtom(t *testing.T) {
	atom, d := FindNearestAtom(loadMini(t), geometry.NewVector3(19, 20, 20))
	assert.Equal(t, 18, atom.Serial)
	assert.InDelta(t, 1.0, d, 1e-9)
}
