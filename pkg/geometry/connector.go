package geometry

// Anchor describes an element for connector purposes: its transform and the
// half extent of its local Y axis (the "up" surface distance).
type Anchor struct {
	Transform  Transform
	HalfHeight float64
}

// Up returns the point on the element surface along its local +Y axis
func (a Anchor) Up() Vector3 {
	return a.Transform.Apply(Vector3{Y: a.HalfHeight})
}

// Down returns the point on the element surface along its local -Y axis
func (a Anchor) Down() Vector3 {
	return a.Transform.Apply(Vector3{Y: -a.HalfHeight})
}

// ConnectorControlPoints returns the three control points of a connector:
// a's up anchor, the midpoint lifted by bow along world +Y, and b's down anchor.
func ConnectorControlPoints(a, b Anchor, bow float64) [3]Vector3 {
	start := a.Up()
	end := b.Down()
	mid := start.Lerp(end, 0.5).Add(Vector3{Y: bow})
	return [3]Vector3{start, mid, end}
}

// ComputeConnectorCurve samples the smooth connector between two anchors.
// The result depends only on the anchors and bow, so equal inputs always
// yield equal curves.
func ComputeConnectorCurve(a, b Anchor, bow float64, segments int) []Vector3 {
	ctrl := ConnectorControlPoints(a, b, bow)
	return NewCatmullRom(ctrl[:]...).Sample(segments)
}
