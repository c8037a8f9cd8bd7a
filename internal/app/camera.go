package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/pkg/geometry"
)

const (
	defaultAngle    = 0.3
	orbitSpeed      = 0.005
	zoomSpeed       = 0.1
	spinSpeed       = 0.5 // radians per second
	minDistance     = 0.5
	maxPitch        = math32.Pi/2 - 0.01
	emptySceneDist  = 20
	frameMultiplier = 2
)

// frameBounds points the camera at bbox and makes the result the reset view
func (app *App) frameBounds(bbox geometry.BoundingBox) {
	center := rl.Vector3{}
	distance := float32(emptySceneDist)
	if !bbox.Empty() {
		c := bbox.Center()
		center = rl.Vector3{X: float32(c.X), Y: float32(c.Y), Z: float32(c.Z)}
		distance = math32.Max(float32(bbox.MaxDimension())*frameMultiplier, 1)
	}

	app.Camera.center = center
	app.Camera.target = center
	app.Camera.distance = distance
	app.Camera.defaultDist = distance
	app.Camera.angleX = defaultAngle
	app.Camera.angleY = defaultAngle
	app.Camera.defaultAngleX = defaultAngle
	app.Camera.defaultAngleY = defaultAngle
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Camera.center
}

// setCameraTopView looks straight down
func (app *App) setCameraTopView() {
	app.Camera.angleX = maxPitch
	app.Camera.angleY = 0
	app.Camera.target = app.Camera.center
}

// setCameraFrontView looks along -Z
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = app.Camera.center
}

// setCameraSideView looks along -X
func (app *App) setCameraSideView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math32.Pi / 2
	app.Camera.target = app.Camera.center
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * math32.Cos(c.angleX) * math32.Sin(c.angleY)
	y := c.distance * math32.Sin(c.angleX)
	z := c.distance * math32.Cos(c.angleX) * math32.Cos(c.angleY)

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doOrbit rotates the camera around its target
func (app *App) doOrbit(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * orbitSpeed
	app.Camera.angleX = math32.Max(-maxPitch, math32.Min(maxPitch, app.Camera.angleX+delta.Y*orbitSpeed))
}

// doZoom moves the camera towards or away from its target
func (app *App) doZoom(wheel float32) {
	app.Camera.distance = math32.Max(minDistance, app.Camera.distance*(1-wheel*zoomSpeed))
}

// doSpin turns the view about Y while the structure spins
func (app *App) doSpin(dt float32) {
	app.Camera.angleY = math32.Mod(app.Camera.angleY+dt*spinSpeed, 2*math32.Pi)
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	// Calculate camera right and up vectors for panning
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}
