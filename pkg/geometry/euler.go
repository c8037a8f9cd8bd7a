package geometry

import "math"

// Euler is a rotation given as angles in radians about X, then Y, then Z
// (intrinsic XYZ order, the same convention the export document uses).
type Euler struct {
	X, Y, Z float64
}

// EulerOrder is the rotation order written next to Euler angles on export
const EulerOrder = "XYZ"

// Add returns the component-wise sum of two rotations
func (e Euler) Add(other Euler) Euler {
	return Euler{X: e.X + other.X, Y: e.Y + other.Y, Z: e.Z + other.Z}
}

// Around returns a rotation of angle radians about a single axis
func Around(axis Axis, angle float64) Euler {
	switch axis {
	case AxisX:
		return Euler{X: angle}
	case AxisY:
		return Euler{Y: angle}
	default:
		return Euler{Z: angle}
	}
}

// Matrix returns the rotation matrix Rx * Ry * Rz
func (e Euler) Matrix() Matrix3 {
	return RotationMatrix(AxisX, e.X).
		Mul(RotationMatrix(AxisY, e.Y)).
		Mul(RotationMatrix(AxisZ, e.Z))
}

// Matrix3 is a row-major 3x3 matrix
type Matrix3 [3][3]float64

// Identity3 returns the identity matrix
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationMatrix returns the matrix rotating by angle radians about axis
func RotationMatrix(axis Axis, angle float64) Matrix3 {
	c, s := math.Cos(angle), math.Sin(angle)
	switch axis {
	case AxisX:
		return Matrix3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
	case AxisY:
		return Matrix3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
	default:
		return Matrix3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
	}
}

// Mul returns m * other
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return out
}

// MulVec returns m * v
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transpose, which is the inverse for rotation matrices
func (m Matrix3) Transpose() Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}
