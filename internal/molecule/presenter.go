package molecule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
	"github.com/philipparndt/protedit/pkg/pdb"
)

// Mesh sizes for each representation
const (
	atomBox         = 0.35
	lineAtomBox     = 0.15
	stickRadius     = 0.15
	lineRadius      = 0.04
	coilRadius      = 0.25
	helixRadius     = 0.6
	sheetRadius     = 0.45
	cartoonSegments = 4
)

const (
	atomPrefix    = "atom:"
	bondPrefix    = "bond:"
	cartoonPrefix = "cartoon:"
)

// Presenter draws a View through a render backend. Primitives are rebuilt
// whenever the view or its revision changes.
type Presenter struct {
	backend  render.Backend
	view     *View
	revision int
	shown    map[string]bool
}

// NewPresenter creates a presenter drawing into b
func NewPresenter(b render.Backend) *Presenter {
	return &Presenter{backend: b, revision: -1, shown: make(map[string]bool)}
}

// Sync pushes the view into the backend if it changed since the last call
func (p *Presenter) Sync(v *View) {
	if v == p.view && v.Revision() == p.revision {
		return
	}
	p.view = v
	p.revision = v.Revision()

	live := make(map[string]bool)
	upsert := func(prim render.Primitive) {
		live[prim.ID] = true
		p.backend.Upsert(prim)
	}

	s := v.Structure()
	for i, a := range s.Atoms {
		st := v.Style(i)
		size := 0.0
		switch st.Rep {
		case Stick:
			size = atomBox
		case Line:
			size = lineAtomBox
		default:
			continue
		}
		upsert(render.Primitive{
			ID:        AtomPrimitiveID(a.Serial),
			Mesh:      geometry.NewBoxMesh(size, size, size),
			Transform: geometry.Transform{Position: a.Position, Scale: geometry.NewVector3(1, 1, 1)},
			Color:     atomColor(a, st),
			Pickable:  true,
		})
	}

	for _, b := range s.Bonds() {
		sa, sb := v.Style(b[0]), v.Style(b[1])
		radius, segments := 0.0, 0
		switch {
		case sa.Rep == Stick && sb.Rep == Stick:
			radius, segments = stickRadius, 6
		case sa.Rep == Line && sb.Rep == Line:
			radius, segments = lineRadius, 3
		default:
			continue
		}
		a1, a2 := s.Atoms[b[0]], s.Atoms[b[1]]
		upsert(render.Primitive{
			ID:        fmt.Sprintf("%s%d-%d", bondPrefix, a1.Serial, a2.Serial),
			Mesh:      geometry.NewTubeMesh([]geometry.Vector3{a1.Position, a2.Position}, radius, segments),
			Transform: geometry.IdentityTransform(),
			Color:     atomColor(a1, sa),
		})
	}

	for _, trace := range s.CATrace() {
		p.cartoon(v, trace, upsert)
	}

	for id := range p.shown {
		if !live[id] {
			p.backend.Remove(id)
		}
	}
	p.shown = live
}

// cartoon draws one tube segment per pair of consecutive cartoon-styled
// alpha carbons, smoothed through the whole trace
func (p *Presenter) cartoon(v *View, trace pdb.Trace, upsert func(render.Primitive)) {
	if len(trace.Points) < 2 {
		return
	}
	curve := geometry.NewCatmullRom(trace.Points...)
	n := len(trace.Points)
	for k := 0; k+1 < n; k++ {
		ia, ib := trace.Atoms[k], trace.Atoms[k+1]
		sa, sb := v.Style(ia), v.Style(ib)
		if sa.Rep != Cartoon || sb.Rep != Cartoon {
			continue
		}
		path := make([]geometry.Vector3, cartoonSegments+1)
		for j := range path {
			t := (float64(k) + float64(j)/cartoonSegments) / float64(n-1)
			path[j] = curve.Point(t)
		}
		color := Spectrum(k, n)
		if sa.Color != nil {
			color = *sa.Color
		}
		upsert(render.Primitive{
			ID:        CartoonPrimitiveID(v.Structure().Atoms[ia].Serial),
			Mesh:      geometry.NewTubeMesh(path, cartoonRadius(trace.SS[k]), 8),
			Transform: geometry.IdentityTransform(),
			Color:     color,
			Pickable:  true,
		})
	}
}

func cartoonRadius(ss pdb.SecondaryStructure) float64 {
	switch ss {
	case pdb.Helix:
		return helixRadius
	case pdb.Sheet:
		return sheetRadius
	default:
		return coilRadius
	}
}

func atomColor(a pdb.Atom, st Style) scene.Color {
	if st.Color != nil {
		return *st.Color
	}
	return ElementColor(a.Element)
}

// AtomPrimitiveID is the primitive id of a stick or line atom
func AtomPrimitiveID(serial int) string {
	return atomPrefix + strconv.Itoa(serial)
}

// CartoonPrimitiveID is the primitive id of the cartoon segment starting at
// the alpha carbon with the given serial
func CartoonPrimitiveID(serial int) string {
	return cartoonPrefix + strconv.Itoa(serial)
}

// SerialForPrimitive maps a picked primitive back to its atom serial.
// Cartoon segments resolve to their alpha carbon.
func SerialForPrimitive(id string) (int, bool) {
	for _, prefix := range []string{atomPrefix, cartoonPrefix} {
		if rest, ok := strings.CutPrefix(id, prefix); ok {
			serial, err := strconv.Atoi(rest)
			return serial, err == nil
		}
	}
	return 0, false
}
