/*
NAME
  vec3.go

DESCRIPTION
  vec3.go provides the fixed-size 3D vector value type used for colors in
  linear RGB, XYZ, LAB/Jzazbz, and their polar (LCh/JzCzhz) forms.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mathutil

import "math"

// Vec3 is a 3D vector, used both for cartesian colors (X,Y,Z / linear RGB /
// a,b channels) and, via Polarize/Depolarize, for polar LCh-style colors
// where X is luma, Y is chroma, and Z is hue in radians.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Magnitude returns the Euclidean length of v.
func (v Vec3) Magnitude() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized returns a unit-length copy of v.
func (v Vec3) Normalized() Vec3 {
	m := v.Magnitude()
	return Vec3{v.X / m, v.Y / m, v.Z / m}
}

// Equal reports whether v and o are within Epsilon of each other in every
// component.
func (v Vec3) Equal(o Vec3) bool {
	return math.Abs(v.X-o.X) <= Epsilon &&
		math.Abs(v.Y-o.Y) <= Epsilon &&
		math.Abs(v.Z-o.Z) <= Epsilon
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Polarize converts a cartesian LAB-style color (L, a, b) to its polar
// LCh-style form (L, C, h), with hue normalized to [0, 2pi).
func Polarize(in Vec3) Vec3 {
	h := math.Atan2(in.Z, in.Y)
	if h < 0 {
		h += 2 * math.Pi
	}
	return Vec3{
		X: in.X,
		Y: math.Hypot(in.Y, in.Z),
		Z: h,
	}
}

// Depolarize converts a polar LCh-style color (L, C, h) back to its
// cartesian LAB-style form (L, a, b).
func Depolarize(in Vec3) Vec3 {
	return Vec3{
		X: in.X,
		Y: in.Y * math.Cos(in.Z),
		Z: in.Y * math.Sin(in.Z),
	}
}

// XyYToXYZ converts a CIE xyY triple to XYZ.
func XyYToXYZ(in Vec3) Vec3 {
	x := (in.X * in.Z) / in.Y
	z := ((1.0 - in.X - in.Y) * in.Z) / in.Y
	return Vec3{X: x, Y: in.Z, Z: z}
}

// AngleDiff returns angleA minus angleB, both assumed in [0, 2pi), wrapped
// to the range [-pi, pi].
func AngleDiff(angleA, angleB float64) float64 {
	if angleA == angleB {
		return 0
	}
	for angleA > 2*math.Pi {
		angleA -= 2 * math.Pi
	}
	for angleA < 0 {
		angleA += 2 * math.Pi
	}
	for angleB > 2*math.Pi {
		angleB -= 2 * math.Pi
	}
	for angleB < 0 {
		angleB += 2 * math.Pi
	}

	output := angleA - angleB
	outabs := math.Abs(output)
	if outabs > math.Pi {
		isneg := output <= 0.0
		output = (2 * math.Pi) - outabs
		if !isneg {
			output *= -1.0
		}
	}
	return output
}

// AngleAdd adds two angles and wraps the result to [0, 2pi).
func AngleAdd(angleA, angleB float64) float64 {
	output := angleA + angleB
	for output > 2*math.Pi {
		output -= 2 * math.Pi
	}
	for output < 0 {
		output += 2 * math.Pi
	}
	return output
}
