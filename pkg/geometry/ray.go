package geometry

import "math"

// Ray is a half-line starting at Origin. Direction should be normalized.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// At returns the point at distance d along the ray
func (r Ray) At(d float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(d))
}

// IntersectTriangle returns the distance to the triangle using the
// Möller–Trumbore test. Hits behind the origin are ignored.
func (r Ray) IntersectTriangle(t Triangle) (float64, bool) {
	const eps = 1e-9
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return 0, false
	}
	f := 1.0 / a
	s := r.Origin.Sub(t.V1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	d := f * edge2.Dot(q)
	if d <= eps {
		return 0, false
	}
	return d, true
}

// IntersectMesh returns the distance to the nearest triangle hit
func (r Ray) IntersectMesh(m Mesh) (float64, bool) {
	best := math.MaxFloat64
	hit := false
	for _, tri := range m.Triangles {
		if d, ok := r.IntersectTriangle(tri); ok && d < best {
			best = d
			hit = true
		}
	}
	return best, hit
}

// IntersectPlane returns where the ray meets the plane through point with
// the given normal.
func (r Ray) IntersectPlane(point, normal Vector3) (Vector3, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < 1e-9 {
		return Vector3{}, false
	}
	d := point.Sub(r.Origin).Dot(normal) / denom
	if d < 0 {
		return Vector3{}, false
	}
	return r.At(d), true
}
