/*
NAME
  lab.go

DESCRIPTION
  lab.go implements the forward CIELAB transform, a perceptual space
  independent of Jzazbz. No other package in this module calls it. Only the
  forward direction is provided; there is no LAB-to-XYZ inverse.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import (
	"math"

	"github.com/crtlab/gamutthingy/internal/mathutil"
)

const (
	cielabEpsilon = 216.0 / 24389.0
	cielabKappa   = 24389.0 / 27.0
)

// labFx is the CIELAB forward companding function.
func labFx(input float64) float64 {
	if input > cielabEpsilon {
		return math.Cbrt(input)
	}
	return ((input * cielabKappa) + 16.0) / 116.0
}

// XYZToLAB converts an XYZ color to CIELAB relative to refWhite.
func XYZToLAB(input, refWhite mathutil.Vec3) mathutil.Vec3 {
	refWhite.X = refWhite.X / refWhite.Y
	refWhite.Z = refWhite.Z / refWhite.Y
	refWhite.Y = 1.0

	normXYZ := mathutil.Vec3{
		X: input.X / refWhite.X,
		Y: input.Y / refWhite.Y,
		Z: input.Z / refWhite.Z,
	}

	fx := labFx(normXYZ.X)
	fy := labFx(normXYZ.Y)
	fz := labFx(normXYZ.Z)

	return mathutil.Vec3{
		X: (116.0 * fy) - 16.0,
		Y: 500.0 * (fx - fy),
		Z: 200.0 * (fy - fz),
	}
}
