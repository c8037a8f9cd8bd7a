// Package molecule holds the molecular variant of the editor: a styled view
// of a PDB structure with atom selection and the atom-level operations.
package molecule

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

const (
	msgSelectForDelete    = "Select element for delete."
	msgSelectForColor     = "Select element for change color."
	msgSelectForTransform = "Select element for transform."
)

// TranslateStep is added to each coordinate of the selected atoms
var TranslateStep = geometry.NewVector3(1, 1, 1)

// View is a structure with per-atom styles and an atom selection
type View struct {
	structure *pdb.Structure
	styles    []Style
	selected  []int // atom indices in selection order
	spinning  bool
	revision  int
}

// NewView wraps a structure with every atom drawn as a spectrum cartoon.
// The view works on its own copy of the atoms.
func NewView(s *pdb.Structure) *View {
	own := *s
	own.Atoms = slices.Clone(s.Atoms)
	v := &View{structure: &own, styles: make([]Style, len(own.Atoms))}
	v.SetStyle(All(), DefaultStyle)
	return v
}

// Structure returns the viewed structure, including translated coordinates
func (v *View) Structure() *pdb.Structure {
	return v.structure
}

// Revision changes whenever anything visible changes
func (v *View) Revision() int {
	return v.revision
}

// Style returns the style of the atom at index i
func (v *View) Style(i int) Style {
	return v.styles[i]
}

// SetStyle applies st to every atom matched by sel
func (v *View) SetStyle(sel Selector, st Style) int {
	n := 0
	for i, a := range v.structure.Atoms {
		if sel.Matches(a) {
			v.styles[i] = st
			n++
		}
	}
	if n > 0 {
		v.revision++
	}
	return n
}

// Index returns the atom index for a serial number
func (v *View) Index(serial int) (int, bool) {
	for i, a := range v.structure.Atoms {
		if a.Serial == serial {
			return i, true
		}
	}
	return -1, false
}

// Toggle selects or deselects an atom. Selected atoms are drawn as green
// sticks; deselected ones return to the spectrum cartoon.
func (v *View) Toggle(serial int) error {
	i, ok := v.Index(serial)
	if !ok {
		return fmt.Errorf("%w: atom %d", scene.ErrUnknownElement, serial)
	}
	if pos := slices.Index(v.selected, i); pos >= 0 {
		v.selected = slices.Delete(v.selected, pos, pos+1)
		v.styles[i] = DefaultStyle
	} else {
		v.selected = append(v.selected, i)
		v.styles[i] = SelectedStyle
	}
	v.revision++
	return nil
}

// Selected returns the serials of the selected atoms in selection order
func (v *View) Selected() []int {
	out := make([]int, len(v.selected))
	for k, i := range v.selected {
		out[k] = v.structure.Atoms[i].Serial
	}
	return out
}

func (v *View) require(op, msg string) error {
	if len(v.selected) == 0 {
		return &command.PreconditionError{Command: op, Message: msg}
	}
	return nil
}

// Remove hides the selected atoms and clears the selection
func (v *View) Remove() error {
	if err := v.require("remove", msgSelectForDelete); err != nil {
		return err
	}
	for _, i := range v.selected {
		v.styles[i] = Style{Rep: Hidden}
	}
	v.selected = nil
	v.revision++
	return nil
}

// Recolor paints the selected atoms as red sticks and clears the selection
func (v *View) Recolor() error {
	if err := v.require("recolor", msgSelectForColor); err != nil {
		return err
	}
	for _, i := range v.selected {
		v.styles[i] = RecolorStyle
	}
	v.selected = nil
	v.revision++
	return nil
}

// Translate shifts the selected atoms by TranslateStep. The selection is
// kept.
func (v *View) Translate() error {
	if err := v.require("transform", msgSelectForTransform); err != nil {
		return err
	}
	for _, i := range v.selected {
		a := &v.structure.Atoms[i]
		a.Position = a.Position.Add(TranslateStep)
	}
	v.revision++
	return nil
}

// RotateResidue rotates the residue of the first selected atom about that
// atom by angle radians around axis
func (v *View) RotateResidue(axis geometry.Axis, angle float64) error {
	if err := v.require("rotate", msgSelectForTransform); err != nil {
		return err
	}
	pivot := v.structure.Atoms[v.selected[0]]

	var members []int
	var points []geometry.Vector3
	for i, a := range v.structure.Atoms {
		if a.Chain == pivot.Chain && a.ResSeq == pivot.ResSeq && a.ICode == pivot.ICode {
			members = append(members, i)
			points = append(points, a.Position)
		}
	}
	rotated := geometry.RotatePointsAbout(points, pivot.Position, axis, angle)
	for k, i := range members {
		v.structure.Atoms[i].Position = rotated[k]
	}
	v.revision++
	return nil
}

// ToggleSpin switches the continuous view rotation about Y
func (v *View) ToggleSpin() bool {
	v.spinning = !v.spinning
	return v.spinning
}

// Spinning reports whether the view rotates continuously
func (v *View) Spinning() bool {
	return v.spinning
}

// AddDemoChain appends five carbon atoms on the diagonal from the origin,
// drawn as sticks
func (v *View) AddDemoChain() []int {
	next := 1
	for _, a := range v.structure.Atoms {
		next = max(next, a.Serial+1)
	}
	var serials []int
	for k := range 5 {
		f := float64(k)
		v.structure.Atoms = append(v.structure.Atoms, pdb.Atom{
			Serial:   next + k,
			Name:     "C",
			ResName:  "UNK",
			ResSeq:   k + 1,
			Position: geometry.NewVector3(f, f, f),
			Element:  "C",
			Hetero:   true,
			SS:       pdb.Coil,
		})
		v.styles = append(v.styles, Style{Rep: Stick})
		serials = append(serials, next+k)
	}
	v.revision++
	return serials
}

// AtomRecord is one visible atom in the JSON export
type AtomRecord struct {
	Serial  int                    `json:"serial"`
	Name    string                 `json:"atom"`
	ResName string                 `json:"resn"`
	Chain   string                 `json:"chain"`
	ResSeq  int                    `json:"resi"`
	X       float64                `json:"x"`
	Y       float64                `json:"y"`
	Z       float64                `json:"z"`
	Element string                 `json:"elem"`
	SS      pdb.SecondaryStructure `json:"ss"`
	Style   Representation         `json:"style"`
	Color   *scene.Color           `json:"color,omitempty"`
}

// Records returns the visible atoms
func (v *View) Records() []AtomRecord {
	out := make([]AtomRecord, 0, len(v.structure.Atoms))
	for i, a := range v.structure.Atoms {
		st := v.styles[i]
		if st.Rep == Hidden {
			continue
		}
		out = append(out, AtomRecord{
			Serial:  a.Serial,
			Name:    a.Name,
			ResName: a.ResName,
			Chain:   a.Chain,
			ResSeq:  a.ResSeq,
			X:       a.Position.X,
			Y:       a.Position.Y,
			Z:       a.Position.Z,
			Element: a.Element,
			SS:      a.SS,
			Style:   st.Rep,
			Color:   st.Color,
		})
	}
	return out
}

// JSON renders the visible atoms as an indented JSON array
func (v *View) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(v.Records(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode structure: %w", err)
	}
	return data, nil
}
