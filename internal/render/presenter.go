package render

import (
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// Connector tube dimensions
const (
	TubeRadius         = 0.2
	TubeRadialSegments = 8
)

// ConnectionColor is the colour of connector tubes
var ConnectionColor = scene.Color{R: 255, G: 255, B: 255}

type meshKey struct {
	shape    scene.Shape
	size     geometry.Vector3
	segments int
}

type elementState struct {
	key       meshKey
	transform geometry.Transform
	color     scene.Color
}

// Presenter mirrors a scene and its selection into a backend
type Presenter struct {
	backend  Backend
	meshes   map[meshKey]geometry.Mesh
	elements map[scene.ElementID]elementState
	tubes    map[scene.ConnectionID]int
}

// NewPresenter creates a presenter drawing into b
func NewPresenter(b Backend) *Presenter {
	return &Presenter{
		backend:  b,
		meshes:   make(map[meshKey]geometry.Mesh),
		elements: make(map[scene.ElementID]elementState),
		tubes:    make(map[scene.ConnectionID]int),
	}
}

// Sync brings the backend up to date. Connection curves are refreshed first
// so they follow every element transform applied since the last frame.
// Unchanged primitives are not re-sent.
func (p *Presenter) Sync(sc *scene.Scene, sel *selection.Selection) {
	sc.Refresh()

	liveElements := make(map[scene.ElementID]bool, sc.Len())
	for _, el := range sc.Elements() {
		liveElements[el.ID] = true
		state := elementState{
			key:       meshKey{shape: el.Shape, size: el.Size, segments: el.Segments},
			transform: el.Transform(),
			color:     sel.DisplayColor(el.ID, el.BaseColor),
		}
		if prev, ok := p.elements[el.ID]; ok && prev == state {
			continue
		}
		p.elements[el.ID] = state
		p.backend.Upsert(Primitive{
			ID:        string(el.ID),
			Mesh:      p.mesh(el),
			Transform: state.transform,
			Color:     state.color,
			Pickable:  true,
		})
	}
	for id := range p.elements {
		if !liveElements[id] {
			delete(p.elements, id)
			p.backend.Remove(string(id))
		}
	}

	liveTubes := make(map[scene.ConnectionID]bool)
	for _, c := range sc.Connections() {
		liveTubes[c.ID] = true
		if rev, ok := p.tubes[c.ID]; ok && rev == c.Revision {
			continue
		}
		p.tubes[c.ID] = c.Revision
		p.backend.Upsert(Primitive{
			ID:        string(c.ID),
			Mesh:      geometry.NewTubeMesh(c.Samples, TubeRadius, TubeRadialSegments),
			Transform: geometry.IdentityTransform(),
			Color:     ConnectionColor,
		})
	}
	for id := range p.tubes {
		if !liveTubes[id] {
			delete(p.tubes, id)
			p.backend.Remove(string(id))
		}
	}
}

// Frame syncs and renders one frame
func (p *Presenter) Frame(sc *scene.Scene, sel *selection.Selection) {
	p.Sync(sc, sel)
	p.backend.Render()
}

func (p *Presenter) mesh(el scene.Element) geometry.Mesh {
	key := meshKey{shape: el.Shape, size: el.Size, segments: el.Segments}
	if m, ok := p.meshes[key]; ok {
		return m
	}
	m := el.LocalMesh()
	p.meshes[key] = m
	return m
}

// HitTest casts a ray from cam through the screen position and returns the
// nearest pickable primitive in s
func HitTest(s *Store, cam *Camera, x, y, width, height float64) (string, geometry.Vector3, bool) {
	if width <= 0 || height <= 0 {
		return "", geometry.Vector3{}, false
	}
	return s.Pick(cam.Ray(x, y, width, height))
}
