/*
NAME
  plane.go

DESCRIPTION
  plane.go provides a plane-through-three-points value type and a
  ray/plane intersection routine, used by the gamut boundary descriptor to
  interpolate a boundary point between two sampled hue slices.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mathutil

import "math"

// Plane is defined by a point on the plane and its unit normal.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// NewPlane builds the plane through the three given (non-colinear) points.
func NewPlane(a, b, c Vec3) Plane {
	leg1 := b.Sub(a)
	leg2 := c.Sub(a)
	return Plane{
		Point:  a,
		Normal: Cross(leg1, leg2).Normalized(),
	}
}

// LinePlaneIntersection finds the point where the ray from rayOrigin in
// rayDirection crosses the plane through planeCoord with normal
// planeNormal. It reports false if the ray is parallel to the plane.
func LinePlaneIntersection(rayOrigin, rayDirection, planeNormal, planeCoord Vec3) (Vec3, bool) {
	rayDirection = rayDirection.Normalized()
	planeNormal = planeNormal.Normalized()

	diff := planeCoord.Sub(rayOrigin)
	d := Dot3(planeNormal, diff)
	e := Dot3(planeNormal, rayDirection)
	if math.Abs(e) <= EpsilonZero {
		return Vec3{}, false
	}
	return rayOrigin.Add(rayDirection.Scale(d / e)), true
}
