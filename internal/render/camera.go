package render

import (
	"math"

	"github.com/philipparndt/protedit/pkg/geometry"
)

// Camera is an orbit camera looking at Target from Distance along the
// spherical angles Pitch (about X) and Yaw (about Y).
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in radians
	Distance float64
	Pitch    float64
	Yaw      float64
}

// NewCamera creates a camera framing the given bounds
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{
		Up:  geometry.NewVector3(0, 1, 0),
		FOV: math.Pi / 4,
	}
	c.Frame(bbox)
	return c
}

// Frame points the camera at the center of bbox from far enough away to
// see all of it. An empty box frames the origin.
func (c *Camera) Frame(bbox geometry.BoundingBox) {
	if bbox.Empty() {
		c.Target = geometry.Vector3{}
		c.Distance = 20
	} else {
		c.Target = bbox.Center()
		c.Distance = math.Max(bbox.MaxDimension()*2.0, 1)
	}
	c.UpdatePosition()
}

// UpdatePosition recomputes the camera position from its angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Pitch) * math.Sin(c.Yaw)
	y := c.Distance * math.Sin(c.Pitch)
	z := c.Distance * math.Cos(c.Pitch) * math.Cos(c.Yaw)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	// Clamp pitch to avoid flipping over the poles
	maxAngle := math.Pi/2 - 0.1
	c.Pitch = math.Max(-maxAngle, math.Min(maxAngle, c.Pitch))

	c.UpdatePosition()
}

// Zoom scales the orbit distance by (1 + delta)
func (c *Camera) Zoom(delta float64) {
	c.Distance *= 1.0 + delta
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Pan moves the target within the view plane, in world units
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.basis()
	c.Target = c.Target.Add(right.Mul(dx)).Add(up.Mul(dy))
	c.UpdatePosition()
}

// Forward returns the unit view direction
func (c *Camera) Forward() geometry.Vector3 {
	forward, _, _ := c.basis()
	return forward
}

func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a world point to screen coordinates and its view depth
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Ray returns the world-space ray through a screen position
func (c *Camera) Ray(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	forward, right, up := c.basis()
	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))

	return geometry.Ray{Origin: c.Position, Direction: dir.Normalize()}
}
