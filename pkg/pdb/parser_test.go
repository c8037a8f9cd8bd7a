package pdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/protedit/pkg/geometry"
)

func TestParseFile(t *testing.T) {
	s, err := ParseFile("testdata/mini.pdb")
	require.NoError(t, err)

	assert.Equal(t, "1ABC", s.ID)
	// the atom after ENDMDL belongs to a second model
	assert.Equal(t, 17, s.AtomCount())
	assert.Equal(t, []Range{{Chain: "A", Start: 1, End: 2}}, s.Helices)
	assert.Equal(t, []Range{{Chain: "A", Start: 4, End: 4}}, s.Sheets)

	ca := s.Atoms[1]
	assert.Equal(t, 2, ca.Serial)
	assert.Equal(t, "CA", ca.Name)
	assert.Equal(t, "ALA", ca.ResName)
	assert.Equal(t, "A", ca.Chain)
	assert.Equal(t, 1, ca.ResSeq)
	assert.Equal(t, "C", ca.Element)
	assert.True(t, ca.IsBackboneCA())

	water := s.Atoms[16]
	assert.True(t, water.Hetero)
	assert.Equal(t, "HOH", water.ResName)
	assert.InDelta(t, 20.0, water.Position.Z, 1e-9)
}

func TestSecondaryStructureAssignment(t *testing.T) {
	s, err := ParseFile("testdata/mini.pdb")
	require.NoError(t, err)

	var got []SecondaryStructure
	for _, r := range s.Residues() {
		got = append(got, r.SS)
	}
	assert.Equal(t, []SecondaryStructure{Helix, Helix, Coil, Sheet, Coil}, got)
}

func TestResiduesAndTrace(t *testing.T) {
	s, err := ParseFile("testdata/mini.pdb")
	require.NoError(t, err)

	residues := s.Residues()
	require.Len(t, residues, 5)
	assert.Equal(t, []int{0, 1, 2, 3}, residues[0].Atoms)
	assert.Equal(t, "GLY", residues[3].Name)

	traces := s.CATrace()
	require.Len(t, traces, 1)
	assert.Equal(t, "A", traces[0].Chain)
	assert.Len(t, traces[0].Points, 4)
	assert.Equal(t, []int{1, 5, 9, 13}, traces[0].Atoms)
}

func TestBonds(t *testing.T) {
	s, err := ParseFile("testdata/mini.pdb")
	require.NoError(t, err)

	bonds := s.Bonds()
	// three bonds inside each residue plus three peptide bonds
	assert.Len(t, bonds, 15)
	assert.Contains(t, bonds, [2]int{0, 1})
	assert.Contains(t, bonds, [2]int{2, 4})
	for _, b := range bonds {
		assert.Less(t, b[0], b[1])
		assert.NotEqual(t, 16, b[1], "water is isolated")
	}
}

func TestBoundingBox(t *testing.T) {
	s, err := ParseFile("testdata/mini.pdb")
	require.NoError(t, err)

	bbox := s.BoundingBox()
	assert.InDelta(t, -1.2, bbox.Min.X, 1e-9)
	assert.InDelta(t, 20.0, bbox.Max.Y, 1e-9)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("REMARK nothing here\n"))
	assert.ErrorIs(t, err, ErrNoAtoms)

	_, err = Parse(strings.NewReader("ATOM      1  CA  ALA A   1       x.000   0.000   0.000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = ParseFile("testdata/missing.pdb")
	assert.Error(t, err)
}

func TestElementFallsBackToName(t *testing.T) {
	s, err := Parse(strings.NewReader("ATOM      1  CA  ALA A   1       0.000   0.000   0.000\n"))
	require.NoError(t, err)
	assert.Equal(t, "C", s.Atoms[0].Element)
	assert.Equal(t, Coil, s.Atoms[0].SS)
}

func TestBondsAcrossGridCells(t *testing.T) {
	s := &Structure{Atoms: []Atom{
		{Serial: 1, Name: "FE", Element: "FE", Hetero: true, Position: geometry.NewVector3(2.45, 0, 0)},
		{Serial: 2, Name: "SG", Element: "S", Position: geometry.NewVector3(5.05, 0, 0)},
		{Serial: 3, Name: "CA", Element: "C", Position: geometry.NewVector3(-0.95, 0, 0)},
	}}

	// FE-S at 2.60 is within 1.32+1.05+0.45; FE-C at 3.40 is not
	assert.Equal(t, [][2]int{{0, 1}}, s.Bonds())
}
