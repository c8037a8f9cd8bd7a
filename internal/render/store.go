package render

import (
	"math"
	"slices"

	"github.com/philipparndt/protedit/pkg/geometry"
)

type entry struct {
	prim   Primitive
	world  geometry.Mesh
	bounds geometry.BoundingBox
}

// Store keeps primitives in insertion order together with their
// world-space meshes
type Store struct {
	entries map[string]*entry
	order   []string
	version int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Upsert adds or replaces a primitive
func (s *Store) Upsert(p Primitive) {
	world := p.Mesh.Transformed(p.Transform)
	e := &entry{prim: p, world: world, bounds: world.BoundingBox()}
	if _, ok := s.entries[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.entries[p.ID] = e
	s.version++
}

// Remove deletes a primitive; unknown ids are ignored
func (s *Store) Remove(id string) {
	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	s.order = slices.DeleteFunc(s.order, func(other string) bool { return other == id })
	s.version++
}

// Get returns the primitive with the given id
func (s *Store) Get(id string) (Primitive, bool) {
	e, ok := s.entries[id]
	if !ok {
		return Primitive{}, false
	}
	return e.prim, true
}

// IDs returns the primitive ids in insertion order
func (s *Store) IDs() []string {
	return slices.Clone(s.order)
}

// Len returns the number of primitives
func (s *Store) Len() int {
	return len(s.order)
}

// Version changes whenever the store content changes
func (s *Store) Version() int {
	return s.version
}

// Each calls fn with every primitive and its world mesh in insertion order
func (s *Store) Each(fn func(p Primitive, world geometry.Mesh)) {
	for _, id := range s.order {
		e := s.entries[id]
		fn(e.prim, e.world)
	}
}

// Bounds returns the bounding box of all primitives
func (s *Store) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, e := range s.entries {
		if e.bounds.Empty() {
			continue
		}
		bbox.Extend(e.bounds.Min)
		bbox.Extend(e.bounds.Max)
	}
	return bbox
}

// Pick returns the nearest pickable primitive hit by ray
func (s *Store) Pick(ray geometry.Ray) (string, geometry.Vector3, bool) {
	bestID := ""
	best := math.Inf(1)
	for _, id := range s.order {
		e := s.entries[id]
		if !e.prim.Pickable {
			continue
		}
		if d, ok := ray.IntersectMesh(e.world); ok && d < best {
			best = d
			bestID = id
		}
	}
	if bestID == "" {
		return "", geometry.Vector3{}, false
	}
	return bestID, ray.At(best), true
}
