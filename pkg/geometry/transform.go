package geometry

// Transform places a local-space shape in the world: scale, then rotate,
// then translate.
type Transform struct {
	Position Vector3
	Rotation Euler
	Scale    Vector3
}

// IdentityTransform returns a transform that leaves points unchanged
func IdentityTransform() Transform {
	return Transform{Scale: Vector3{X: 1, Y: 1, Z: 1}}
}

// Apply maps a local point to world space
func (t Transform) Apply(local Vector3) Vector3 {
	return t.Rotation.Matrix().MulVec(local.Scale(t.Scale)).Add(t.Position)
}

// ApplyInverse maps a world point back into local space
func (t Transform) ApplyInverse(world Vector3) Vector3 {
	return t.Rotation.Matrix().Transpose().MulVec(world.Sub(t.Position)).Div(t.Scale)
}

// ApplyDirection rotates (but does not translate or scale) a local direction
func (t Transform) ApplyDirection(dir Vector3) Vector3 {
	return t.Rotation.Matrix().MulVec(dir)
}

// LocalAxis returns the world-space direction of the local axis
func (t Transform) LocalAxis(axis Axis) Vector3 {
	return t.ApplyDirection(axis.Unit())
}
