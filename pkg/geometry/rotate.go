package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Axis names one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis accepts "x", "y" or "z" in any case
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q (expected x, y or z)", s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Unit returns the unit vector along the axis
func (a Axis) Unit() Vector3 {
	switch a {
	case AxisX:
		return Vector3{X: 1}
	case AxisY:
		return Vector3{Y: 1}
	default:
		return Vector3{Z: 1}
	}
}

// RotatePoint rotates p by angle radians about the given axis through the
// origin. The coordinate along the axis is left unchanged.
func RotatePoint(p Vector3, axis Axis, angle float64) Vector3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return Vector3{X: p.X, Y: p.Y*cos - p.Z*sin, Z: p.Y*sin + p.Z*cos}
	case AxisY:
		return Vector3{X: p.X*cos + p.Z*sin, Y: p.Y, Z: -p.X*sin + p.Z*cos}
	default:
		return Vector3{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos, Z: p.Z}
	}
}

// RotatePoints returns a new slice with every point rotated about axis.
// The input slice is not modified.
func RotatePoints(points []Vector3, axis Axis, angle float64) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[i] = RotatePoint(p, axis, angle)
	}
	return out
}

// RotatePointsAbout rotates points about an axis-parallel line through pivot
func RotatePointsAbout(points []Vector3, pivot Vector3, axis Axis, angle float64) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[i] = RotatePoint(p.Sub(pivot), axis, angle).Add(pivot)
	}
	return out
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
