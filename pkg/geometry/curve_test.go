package geometry

import (
	"math"
	"testing"
)

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	ctrl := []Vector3{NewVector3(0, 0, 0), NewVector3(1, 5, 0), NewVector3(2, 0, 0)}
	curve := NewCatmullRom(ctrl...)

	for i, tt := range []float64{0, 0.5, 1} {
		if got := curve.Point(tt); !got.ApproxEqual(ctrl[i], 1e-12) {
			t.Errorf("Point(%v): expected %v, got %v", tt, ctrl[i], got)
		}
	}
}

func TestCatmullRomSample(t *testing.T) {
	curve := NewCatmullRom(NewVector3(0, 0, 0), NewVector3(1, 0, 0))
	samples := curve.Sample(20)

	if len(samples) != 21 {
		t.Fatalf("expected 21 samples, got %d", len(samples))
	}
	// A straight two-point curve stays on the line
	for _, s := range samples {
		if math.Abs(s.Y) > 1e-12 || math.Abs(s.Z) > 1e-12 {
			t.Errorf("sample left the line: %v", s)
		}
	}
}

func TestConnectorControlPoints(t *testing.T) {
	a := Anchor{Transform: IdentityTransform(), HalfHeight: 2.5}
	bt := IdentityTransform()
	bt.Position = NewVector3(10, 0, 0)
	b := Anchor{Transform: bt, HalfHeight: 1}

	ctrl := ConnectorControlPoints(a, b, 5)
	if !ctrl[0].ApproxEqual(NewVector3(0, 2.5, 0), 1e-12) {
		t.Errorf("start anchor: %v", ctrl[0])
	}
	if !ctrl[2].ApproxEqual(NewVector3(10, -1, 0), 1e-12) {
		t.Errorf("end anchor: %v", ctrl[2])
	}
	if !ctrl[1].ApproxEqual(NewVector3(5, 5.75, 0), 1e-12) {
		t.Errorf("midpoint: %v", ctrl[1])
	}
}

func TestComputeConnectorCurveIsDeterministic(t *testing.T) {
	a := Anchor{Transform: IdentityTransform(), HalfHeight: 1}
	bt := IdentityTransform()
	bt.Position = NewVector3(3, 4, 5)
	b := Anchor{Transform: bt, HalfHeight: 1}

	first := ComputeConnectorCurve(a, b, 4.2, 20)
	second := ComputeConnectorCurve(a, b, 4.2, 20)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if first[0] != a.Up() || !first[len(first)-1].ApproxEqual(b.Down(), 1e-12) {
		t.Errorf("curve does not start/end on anchors")
	}
}
