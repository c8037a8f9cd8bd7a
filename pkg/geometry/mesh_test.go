package geometry

import (
	"math"
	"testing"
)

func TestBoxMesh(t *testing.T) {
	box := NewBoxMesh(5, 2, 0.5)

	if box.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", box.TriangleCount())
	}
	if len(box.Edges) != 12 {
		t.Errorf("expected 12 edges, got %d", len(box.Edges))
	}
	size := box.BoundingBox().Size()
	if !size.ApproxEqual(NewVector3(5, 2, 0.5), 1e-12) {
		t.Errorf("unexpected box size %v", size)
	}
}

func TestCylinderMesh(t *testing.T) {
	cyl := NewCylinderMesh(1, 5, 32)

	// 32 side quads + 32 top + 32 bottom fan triangles
	if cyl.TriangleCount() != 32*4 {
		t.Errorf("expected %d triangles, got %d", 32*4, cyl.TriangleCount())
	}
	size := cyl.BoundingBox().Size()
	if math.Abs(size.Y-5) > 1e-12 {
		t.Errorf("expected height 5, got %v", size.Y)
	}
}

func TestTubeMeshRadius(t *testing.T) {
	path := NewCatmullRom(NewVector3(0, 0, 0), NewVector3(2, 3, 0), NewVector3(4, 0, 1)).Sample(20)
	tube := NewTubeMesh(path, 0.2, 8)

	if tube.TriangleCount() != 20*8*2 {
		t.Errorf("expected %d triangles, got %d", 20*8*2, tube.TriangleCount())
	}
	// Every ring vertex sits radius away from its path point
	first := tube.Triangles[0]
	if d := first.V1.Distance(path[0]); math.Abs(d-0.2) > 1e-9 {
		t.Errorf("ring vertex at distance %v, expected 0.2", d)
	}
}

func TestTubeMeshNeedsTwoPoints(t *testing.T) {
	if NewTubeMesh([]Vector3{NewVector3(0, 0, 0)}, 1, 8).TriangleCount() != 0 {
		t.Errorf("single point path should yield empty mesh")
	}
}

func TestMeshTransformed(t *testing.T) {
	tr := IdentityTransform()
	tr.Position = NewVector3(10, 0, 0)
	moved := NewBoxMesh(2, 2, 2).Transformed(tr)

	center := moved.BoundingBox().Center()
	if !center.ApproxEqual(NewVector3(10, 0, 0), 1e-12) {
		t.Errorf("expected center at (10,0,0), got %v", center)
	}
}
