package scene

import (
	"github.com/philipparndt/protedit/pkg/geometry"
)

// ElementID identifies an element within one scene. IDs are never reused.
type ElementID string

// Element is one secondary-structure primitive in the scene
type Element struct {
	ID        ElementID
	Kind      Kind
	Shape     Shape
	Length    float64
	Width     float64
	Size      geometry.Vector3 // local extents along X, Y, Z before scaling
	Segments  int
	Position  geometry.Vector3
	Rotation  geometry.Euler
	Scale     geometry.Vector3
	BaseColor Color
}

// Params sizes a new element. Width applies to sheets only.
type Params struct {
	Length float64
	Width  float64
}

// Transform returns the element's placement in world space
func (e *Element) Transform() geometry.Transform {
	return geometry.Transform{
		Position: e.Position,
		Rotation: e.Rotation,
		Scale:    e.Scale,
	}
}

// Anchor returns the connector anchor: the element transform with the
// distance from its center to its local up/down surface.
func (e *Element) Anchor() geometry.Anchor {
	return geometry.Anchor{Transform: e.Transform(), HalfHeight: e.Size.Y / 2}
}

// LocalMesh builds the untransformed primitive mesh
func (e *Element) LocalMesh() geometry.Mesh {
	switch e.Shape {
	case ShapeCylinder:
		return geometry.NewCylinderMesh(e.Size.X/2, e.Size.Y, e.Segments)
	default:
		return geometry.NewBoxMesh(e.Size.X, e.Size.Y, e.Size.Z)
	}
}

// Mutation describes changes to apply to an element. Nil fields are left
// untouched. SetPosition and Translate may be combined; the translation is
// applied after the absolute position.
type Mutation struct {
	SetPosition *geometry.Vector3
	Translate   *geometry.Vector3
	Rotate      *geometry.Euler
	SetScale    *geometry.Vector3
	SetColor    *Color
}

// movesGeometry reports whether the mutation changes anything a connector
// curve depends on
func (m Mutation) movesGeometry() bool {
	return m.SetPosition != nil || m.Translate != nil || m.Rotate != nil || m.SetScale != nil
}
