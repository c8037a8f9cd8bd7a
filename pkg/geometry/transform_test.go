package geometry

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Position: NewVector3(3, -2, 5),
		Rotation: Euler{X: 0.3, Y: -1.1, Z: math.Pi / 4},
		Scale:    NewVector3(1.5, 1.5, 1.5),
	}

	p := NewVector3(0.25, 4, -1)
	back := tr.ApplyInverse(tr.Apply(p))
	if !back.ApproxEqual(p, 1e-9) {
		t.Errorf("round trip failed: expected %v, got %v", p, back)
	}
}

func TestIdentityTransform(t *testing.T) {
	p := NewVector3(1, 2, 3)
	if got := IdentityTransform().Apply(p); !got.ApproxEqual(p, 1e-12) {
		t.Errorf("identity moved point: %v", got)
	}
}

func TestTransformLocalAxis(t *testing.T) {
	tr := IdentityTransform()
	tr.Rotation = Euler{Z: math.Pi / 2}

	up := tr.LocalAxis(AxisY)
	if !up.ApproxEqual(NewVector3(-1, 0, 0), 1e-12) {
		t.Errorf("expected local Y to point along -X, got %v", up)
	}
}
