/*
NAME
  matrix3.go

DESCRIPTION
  matrix3.go provides a fixed-size 3x3 matrix value type with the multiply,
  invert, and color-transform operations needed by the gamut and CRT
  emulation packages.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mathutil

// Matrix3 is a row-major 3x3 matrix of value type. The zero value is the
// all-zeros matrix, not identity; use Identity3 for that.
type Matrix3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// MultVec multiplies m by the column vector color and returns the result.
func (m Matrix3) MultVec(color Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*color.X + m[0][1]*color.Y + m[0][2]*color.Z,
		Y: m[1][0]*color.X + m[1][1]*color.Y + m[1][2]*color.Z,
		Z: m[2][0]*color.X + m[2][1]*color.Y + m[2][2]*color.Z,
	}
}

// Mult returns m*o.
func (m Matrix3) Mult(o Matrix3) Matrix3 {
	var out Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = m[row][0]*o[0][col] + m[row][1]*o[1][col] + m[row][2]*o[2][col]
		}
	}
	return out
}

// Diag builds a diagonal matrix from a 3-vector.
func Diag(v Vec3) Matrix3 {
	return Matrix3{
		{v.X, 0, 0},
		{0, v.Y, 0},
		{0, 0, v.Z},
	}
}

// Invert returns the inverse of m via the cofactor/adjoint method, and
// reports false if m is singular (determinant exactly zero).
func (m Matrix3) Invert() (Matrix3, bool) {
	det := (m[0][0] * m[1][1] * m[2][2]) +
		(m[0][1] * m[1][2] * m[2][0]) +
		(m[0][2] * m[1][0] * m[2][1]) -
		(m[0][0] * m[1][2] * m[2][1]) -
		(m[0][1] * m[1][0] * m[2][2]) -
		(m[0][2] * m[1][1] * m[2][0])

	if det == 0.0 {
		return Matrix3{}, false
	}

	var cofactor Matrix3
	signChange := false
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var minor [4]float64
			idx := 0
			for mrow := 0; mrow < 3; mrow++ {
				for mcol := 0; mcol < 3; mcol++ {
					if row != mrow && col != mcol {
						minor[idx] = m[mrow][mcol]
						idx++
					}
				}
			}
			c := (minor[0] * minor[3]) - (minor[1] * minor[2])
			if signChange {
				c *= -1.0
			}
			signChange = !signChange
			cofactor[row][col] = c
		}
	}

	var out Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			// adjoint is the cofactor transpose; divide by determinant in the same step.
			out[row][col] = cofactor[col][row] / det
		}
	}
	return out, true
}
