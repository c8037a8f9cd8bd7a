package pdb

import (
	"math"

	"github.com/philipparndt/protedit/pkg/geometry"
)

// SecondaryStructure is the per-residue structure assignment
type SecondaryStructure string

const (
	Coil  SecondaryStructure = "coil"
	Helix SecondaryStructure = "helix"
	Sheet SecondaryStructure = "sheet"
)

// Atom is one ATOM or HETATM record
type Atom struct {
	Serial   int
	Name     string
	ResName  string
	Chain    string
	ResSeq   int
	ICode    string
	Position geometry.Vector3
	Element  string
	Hetero   bool
	SS       SecondaryStructure
}

// IsBackboneCA reports whether the atom is a protein alpha carbon
func (a Atom) IsBackboneCA() bool {
	return !a.Hetero && a.Name == "CA" && a.Element == "C"
}

// Range is an inclusive residue span within one chain
type Range struct {
	Chain string
	Start int
	End   int
}

// Contains reports whether the residue lies within the range
func (r Range) Contains(chain string, seq int) bool {
	return r.Chain == chain && seq >= r.Start && seq <= r.End
}

// Residue groups the atoms of one residue, referenced by index
type Residue struct {
	Chain string
	Seq   int
	ICode string
	Name  string
	SS    SecondaryStructure
	Atoms []int
}

// Structure is a parsed PDB file. Only the first model is kept.
type Structure struct {
	ID      string
	Atoms   []Atom
	Helices []Range
	Sheets  []Range
}

// AtomCount returns the number of atoms
func (s *Structure) AtomCount() int {
	return len(s.Atoms)
}

// BoundingBox returns the box around all atoms
func (s *Structure) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, a := range s.Atoms {
		bbox.Extend(a.Position)
	}
	return bbox
}

// Residues returns the residues in file order
func (s *Structure) Residues() []Residue {
	var out []Residue
	for i, a := range s.Atoms {
		n := len(out)
		if n == 0 || out[n-1].Chain != a.Chain || out[n-1].Seq != a.ResSeq || out[n-1].ICode != a.ICode {
			out = append(out, Residue{Chain: a.Chain, Seq: a.ResSeq, ICode: a.ICode, Name: a.ResName, SS: a.SS})
			n++
		}
		out[n-1].Atoms = append(out[n-1].Atoms, i)
	}
	return out
}

// Trace is the alpha-carbon path of one chain
type Trace struct {
	Chain  string
	Points []geometry.Vector3
	SS     []SecondaryStructure
	Atoms  []int
}

// CATrace returns one alpha-carbon trace per chain, in file order
func (s *Structure) CATrace() []Trace {
	var out []Trace
	for i, a := range s.Atoms {
		if !a.IsBackboneCA() {
			continue
		}
		n := len(out)
		if n == 0 || out[n-1].Chain != a.Chain {
			out = append(out, Trace{Chain: a.Chain})
			n++
		}
		t := &out[n-1]
		t.Points = append(t.Points, a.Position)
		t.SS = append(t.SS, a.SS)
		t.Atoms = append(t.Atoms, i)
	}
	return out
}

// BondTolerance is added to the sum of covalent radii when inferring bonds
const BondTolerance = 0.45

var covalentRadius = map[string]float64{
	"H": 0.31, "C": 0.76, "N": 0.71, "O": 0.66, "S": 1.05, "P": 1.07,
	"FE": 1.32, "ZN": 1.22, "MG": 1.41, "CA": 1.76, "SE": 1.20,
}

// bondCell is the grid cell edge used by Bonds. It is at least the longest
// possible bond, so bonded atoms always lie in neighbouring cells.
var bondCell = func() float64 {
	maxRadius := 0.0
	for _, r := range covalentRadius {
		maxRadius = math.Max(maxRadius, r)
	}
	return 2*maxRadius + BondTolerance
}()

func radius(element string) float64 {
	if r, ok := covalentRadius[element]; ok {
		return r
	}
	return 0.77
}

// Bonds infers covalent bonds from atom distances. Each pair is listed once
// with the lower index first.
func (s *Structure) Bonds() [][2]int {
	cell := bondCell
	type key [3]int
	cellOf := func(p geometry.Vector3) key {
		return key{int(math.Floor(p.X / cell)), int(math.Floor(p.Y / cell)), int(math.Floor(p.Z / cell))}
	}

	grid := make(map[key][]int)
	for i, a := range s.Atoms {
		k := cellOf(a.Position)
		grid[k] = append(grid[k], i)
	}

	var bonds [][2]int
	for i, a := range s.Atoms {
		k := cellOf(a.Position)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					for _, j := range grid[key{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if j <= i {
							continue
						}
						b := s.Atoms[j]
						if a.Element == "H" && b.Element == "H" {
							continue
						}
						limit := radius(a.Element) + radius(b.Element) + BondTolerance
						if d := a.Position.Distance(b.Position); d > 0.4 && d <= limit {
							bonds = append(bonds, [2]int{i, j})
						}
					}
				}
			}
		}
	}
	return bonds
}
