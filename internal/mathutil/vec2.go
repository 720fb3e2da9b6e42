/*
NAME
  vec2.go

DESCRIPTION
  vec2.go provides a fixed-size 2D vector value type and the line-segment
  geometry primitives used to walk a gamut boundary polyline.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package mathutil provides the small, allocation-free vector and matrix
// arithmetic shared by the color-space, gamut-boundary, and CRT-emulation
// packages. Types are value aggregates on purpose: the gamut boundary
// descriptor samples millions of points per slice, and none of that work
// should touch the heap.
package mathutil

import "math"

// Epsilon is the tolerance used throughout the package for "close enough"
// floating point comparisons.
const Epsilon = 1e-6

// EpsilonZero is the (tighter) tolerance used to detect a true zero, e.g.
// a vanishing determinant.
const EpsilonZero = 1e-10

// Vec2 is a 2D vector, typically (chroma, luma) in the C-J plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Magnitude returns the Euclidean length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns a unit-length copy of v.
func (v Vec2) Normalized() Vec2 {
	m := v.Magnitude()
	return Vec2{v.X / m, v.Y / m}
}

// Equal reports whether v and o are within Epsilon of each other in both
// components.
func (v Vec2) Equal(o Vec2) bool {
	return math.Abs(v.X-o.X) <= Epsilon && math.Abs(v.Y-o.Y) <= Epsilon
}

// Dot2 returns the dot product of a and b.
func Dot2(a, b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// ClockwiseAngle returns the clockwise angle in radians between a and b.
func ClockwiseAngle(a, b Vec2) float64 {
	dot := Dot2(a, b)
	det := (b.X * a.Y) - (b.Y * a.X)
	return math.Atan2(det, dot)
}

// LineIntersection2D finds the intersection of line AB with line CD. It
// reports false if the lines are parallel (or coincident).
func LineIntersection2D(a, b, c, d Vec2) (Vec2, bool) {
	a1 := b.Y - a.Y
	b1 := a.X - b.X
	c1 := (a1 * a.X) + (b1 * a.Y)

	a2 := d.Y - c.Y
	b2 := c.X - d.X
	c2 := (a2 * c.X) + (b2 * c.Y)

	determinant := (a1 * b2) - (a2 * b1)
	if math.Abs(determinant) < EpsilonZero {
		return Vec2{}, false
	}

	return Vec2{
		X: ((b2 * c1) - (b1 * c2)) / determinant,
		Y: ((a1 * c2) - (a2 * c1)) / determinant,
	}, true
}

// IsBetween2D reports whether b lies between a and c, assuming the three
// points are colinear.
func IsBetween2D(a, b, c Vec2) bool {
	xOK := (a.X >= b.X && b.X >= c.X) || (a.X <= b.X && b.X <= c.X)
	yOK := (a.Y >= b.Y && b.Y >= c.Y) || (a.Y <= b.Y && b.Y <= c.Y)
	return xOK && yOK
}

// SlowIsBetween2D is an epsilon-relaxed version of IsBetween2D, used as the
// second-pass fallback during boundary-segment matching when strict
// inequality comparisons fail due to floating point noise.
func SlowIsBetween2D(a, b, c Vec2) bool {
	xOK := (a.X >= b.X-Epsilon && b.X >= c.X-Epsilon) || (a.X <= b.X+Epsilon && b.X <= c.X+Epsilon)
	yOK := (a.Y >= b.Y-Epsilon && b.Y >= c.Y-Epsilon) || (a.Y <= b.Y+Epsilon && b.Y <= c.Y+Epsilon)
	return xOK && yOK
}

// DistanceToSegment returns the shortest distance from p to the segment AB.
func DistanceToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	abLenSq := Dot2(ab, ab)
	if abLenSq < EpsilonZero {
		return p.Sub(a).Magnitude()
	}
	t := Dot2(p.Sub(a), ab) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Magnitude()
}
