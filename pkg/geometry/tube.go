package geometry

import "math"

// NewTubeMesh sweeps a circle of the given radius along path. Ring
// orientation follows a parallel-transport frame so the tube does not twist
// at gentle bends.
func NewTubeMesh(path []Vector3, radius float64, radialSegments int) Mesh {
	if len(path) < 2 {
		return Mesh{}
	}
	if radialSegments < 3 {
		radialSegments = 3
	}

	tangents := make([]Vector3, len(path))
	for i := range path {
		prev := path[max(0, i-1)]
		next := path[min(len(path)-1, i+1)]
		tangents[i] = next.Sub(prev).Normalize()
	}

	normal := initialNormal(tangents[0])
	rings := make([][]Vector3, len(path))
	for i, p := range path {
		t := tangents[i]
		n := normal.Sub(t.Mul(t.Dot(normal)))
		if n.Length() < 1e-9 {
			n = initialNormal(t)
		}
		n = n.Normalize()
		normal = n
		b := t.Cross(n).Normalize()

		ring := make([]Vector3, radialSegments)
		for j := 0; j < radialSegments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(radialSegments)
			offset := n.Mul(math.Cos(theta)).Add(b.Mul(math.Sin(theta))).Mul(radius)
			ring[j] = p.Add(offset)
		}
		rings[i] = ring
	}

	var m Mesh
	for i := 0; i+1 < len(rings); i++ {
		a, b := rings[i], rings[i+1]
		for j := 0; j < radialSegments; j++ {
			k := (j + 1) % radialSegments
			m.quad(a[j], b[j], b[k], a[k])
		}
		m.Edges = append(m.Edges, [2]Vector3{path[i], path[i+1]})
	}
	return m
}

// initialNormal picks a vector perpendicular to t using its smallest component
func initialNormal(t Vector3) Vector3 {
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	var ref Vector3
	switch {
	case ax <= ay && ax <= az:
		ref = Vector3{X: 1}
	case ay <= az:
		ref = Vector3{Y: 1}
	default:
		ref = Vector3{Z: 1}
	}
	return t.Cross(ref).Cross(t).Normalize()
}
