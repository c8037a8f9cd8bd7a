// Package render connects a scene to the drawing backends. A Presenter
// turns scene state into primitives once per frame and pushes them into a
// Backend; every backend shares the same Store for primitive bookkeeping
// and ray-cast picking.
package render

import (
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// Primitive is one drawable object. Mesh is in local space and is placed in
// the world by Transform.
type Primitive struct {
	ID        string
	Mesh      geometry.Mesh
	Transform geometry.Transform
	Color     scene.Color
	Pickable  bool
}

// Backend draws primitives and answers hit tests in screen coordinates
type Backend interface {
	Upsert(p Primitive)
	Remove(id string)
	HitTest(x, y float64) (id string, point geometry.Vector3, ok bool)
	Render()
}
