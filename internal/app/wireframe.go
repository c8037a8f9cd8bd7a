package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// drawEdges outlines the feature edges of a world-space mesh in a darker
// shade of its colour
func drawEdges(m geometry.Mesh, c scene.Color) {
	edgeColor := rl.NewColor(c.R/2, c.G/2, c.B/2, 220)
	for _, e := range m.Edges {
		rl.DrawLine3D(toRaylib(e[0]), toRaylib(e[1]), edgeColor)
	}
}

// drawGrid draws the ground grid below the framed content
func (app *App) drawGrid() {
	n := int32(app.Camera.defaultDist)
	if n < 10 {
		n = 10
	}
	rl.PushMatrix()
	rl.Translatef(app.Camera.center.X, app.Camera.center.Y-app.Camera.defaultDist/4, app.Camera.center.Z)
	rl.DrawGrid(n, 1)
	rl.PopMatrix()
}
