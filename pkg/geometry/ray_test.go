package geometry

import (
	"math"
	"testing"
)

func TestRayIntersectTriangle(t *testing.T) {
	tri := NewTriangle(NewVector3(-1, -1, 0), NewVector3(1, -1, 0), NewVector3(0, 1, 0))
	ray := Ray{Origin: NewVector3(0, 0, 5), Direction: NewVector3(0, 0, -1)}

	d, ok := ray.IntersectTriangle(tri)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %v", d)
	}

	miss := Ray{Origin: NewVector3(5, 5, 5), Direction: NewVector3(0, 0, -1)}
	if _, ok := miss.IntersectTriangle(tri); ok {
		t.Errorf("expected miss")
	}

	behind := Ray{Origin: NewVector3(0, 0, 5), Direction: NewVector3(0, 0, 1)}
	if _, ok := behind.IntersectTriangle(tri); ok {
		t.Errorf("hit behind the origin should be ignored")
	}
}

func TestRayIntersectMeshNearest(t *testing.T) {
	box := NewBoxMesh(2, 2, 2)
	ray := Ray{Origin: NewVector3(0.3, -0.2, 10), Direction: NewVector3(0, 0, -1)}

	d, ok := ray.IntersectMesh(box)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(d-9) > 1e-9 {
		t.Errorf("expected nearest face at distance 9, got %v", d)
	}
}

func TestRayIntersectPlane(t *testing.T) {
	ray := Ray{Origin: NewVector3(0, 10, 0), Direction: NewVector3(0, -1, 0)}
	p, ok := ray.IntersectPlane(NewVector3(0, 2, 0), NewVector3(0, 1, 0))
	if !ok || !p.ApproxEqual(NewVector3(0, 2, 0), 1e-12) {
		t.Errorf("expected (0,2,0), got %v (ok=%v)", p, ok)
	}
}
