package geometry

import "math"

// CatmullRom is a uniform Catmull-Rom spline passing through every control
// point. The first and last segments use reflected neighbours, so the curve
// starts and ends exactly on the outer control points.
type CatmullRom struct {
	Points []Vector3
}

// NewCatmullRom creates a curve through the given control points
func NewCatmullRom(points ...Vector3) CatmullRom {
	return CatmullRom{Points: append([]Vector3(nil), points...)}
}

// Point returns the curve position at t in [0, 1]
func (c CatmullRom) Point(t float64) Vector3 {
	n := len(c.Points)
	switch n {
	case 0:
		return Vector3{}
	case 1:
		return c.Points[0]
	}

	t = math.Max(0, math.Min(1, t))
	p := float64(n-1) * t
	seg := int(math.Floor(p))
	weight := p - float64(seg)
	if seg >= n-1 {
		seg = n - 2
		weight = 1
	}

	p1 := c.Points[seg]
	p2 := c.Points[seg+1]

	var p0, p3 Vector3
	if seg > 0 {
		p0 = c.Points[seg-1]
	} else {
		p0 = p1.Mul(2).Sub(p2)
	}
	if seg+2 < n {
		p3 = c.Points[seg+2]
	} else {
		p3 = p2.Mul(2).Sub(p1)
	}

	return catmullRom(p0, p1, p2, p3, weight)
}

// Sample returns segments+1 evenly spaced points along the curve in
// parameter space, including both end points.
func (c CatmullRom) Sample(segments int) []Vector3 {
	if segments < 1 {
		segments = 1
	}
	out := make([]Vector3, segments+1)
	for i := 0; i <= segments; i++ {
		out[i] = c.Point(float64(i) / float64(segments))
	}
	return out
}

func catmullRom(p0, p1, p2, p3 Vector3, w float64) Vector3 {
	t1 := p2.Sub(p0).Mul(0.5)
	t2 := p3.Sub(p1).Mul(0.5)

	c0 := p1
	c1 := t1
	c2 := p1.Mul(-3).Add(p2.Mul(3)).Sub(t1.Mul(2)).Sub(t2)
	c3 := p1.Mul(2).Sub(p2.Mul(2)).Add(t1).Add(t2)

	w2 := w * w
	w3 := w2 * w
	return c0.Add(c1.Mul(w)).Add(c2.Mul(w2)).Add(c3.Mul(w3))
}
