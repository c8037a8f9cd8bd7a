package geometry

import "math"

// Mesh is a triangle soup plus the feature edges used for wireframe drawing
type Mesh struct {
	Triangles []Triangle
	Edges     [][2]Vector3
}

// TriangleCount returns the number of triangles in the mesh
func (m Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the mesh
func (m Mesh) BoundingBox() BoundingBox {
	bbox := NewBoundingBox()
	for _, tri := range m.Triangles {
		bbox.Extend(tri.V1)
		bbox.Extend(tri.V2)
		bbox.Extend(tri.V3)
	}
	return bbox
}

// Transformed returns a copy of the mesh moved into world space
func (m Mesh) Transformed(t Transform) Mesh {
	out := Mesh{
		Triangles: make([]Triangle, len(m.Triangles)),
		Edges:     make([][2]Vector3, len(m.Edges)),
	}
	for i, tri := range m.Triangles {
		out.Triangles[i] = NewTriangle(t.Apply(tri.V1), t.Apply(tri.V2), t.Apply(tri.V3))
	}
	for i, e := range m.Edges {
		out.Edges[i] = [2]Vector3{t.Apply(e[0]), t.Apply(e[1])}
	}
	return out
}

func (m *Mesh) quad(a, b, c, d Vector3) {
	m.Triangles = append(m.Triangles, NewTriangle(a, b, c), NewTriangle(a, c, d))
}

// NewBoxMesh creates an axis-aligned box centered on the origin with the
// given extents along X, Y and Z.
func NewBoxMesh(width, height, depth float64) Mesh {
	x, y, z := width/2, height/2, depth/2
	c := [8]Vector3{
		{X: -x, Y: -y, Z: -z}, // 0
		{X: x, Y: -y, Z: -z},  // 1
		{X: x, Y: y, Z: -z},   // 2
		{X: -x, Y: y, Z: -z},  // 3
		{X: -x, Y: -y, Z: z},  // 4
		{X: x, Y: -y, Z: z},   // 5
		{X: x, Y: y, Z: z},    // 6
		{X: -x, Y: y, Z: z},   // 7
	}

	var m Mesh
	m.quad(c[4], c[5], c[6], c[7]) // front
	m.quad(c[1], c[0], c[3], c[2]) // back
	m.quad(c[0], c[4], c[7], c[3]) // left
	m.quad(c[5], c[1], c[2], c[6]) // right
	m.quad(c[7], c[6], c[2], c[3]) // top
	m.quad(c[0], c[1], c[5], c[4]) // bottom

	for _, e := range [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	} {
		m.Edges = append(m.Edges, [2]Vector3{c[e[0]], c[e[1]]})
	}
	return m
}

// NewCylinderMesh creates a capped cylinder along the Y axis, centered on
// the origin.
func NewCylinderMesh(radius, height float64, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	h := height / 2
	top := make([]Vector3, segments)
	bottom := make([]Vector3, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, z := radius*math.Sin(theta), radius*math.Cos(theta)
		top[i] = Vector3{X: x, Y: h, Z: z}
		bottom[i] = Vector3{X: x, Y: -h, Z: z}
	}

	var m Mesh
	topCenter := Vector3{Y: h}
	bottomCenter := Vector3{Y: -h}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		m.quad(bottom[i], bottom[j], top[j], top[i])
		m.Triangles = append(m.Triangles,
			NewTriangle(topCenter, top[i], top[j]),
			NewTriangle(bottomCenter, bottom[j], bottom[i]),
		)
		m.Edges = append(m.Edges,
			[2]Vector3{top[i], top[j]},
			[2]Vector3{bottom[i], bottom[j]},
		)
	}
	// A few silhouette lines are enough for the wireframe views
	for i := 0; i < segments; i += max(1, segments/4) {
		m.Edges = append(m.Edges, [2]Vector3{bottom[i], top[i]})
	}
	return m
}
