/*
NAME
  jzazbz.go

DESCRIPTION
  jzazbz.go implements the Jzazbz perceptual color space (Safdar et al.
  2017) used as the sampling space for gamut boundary descriptors, along
  with its polar JzCzhz form via mathutil.Polarize/Depolarize.

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

// Jzazbz model constants from the paper. PeakLuminance is set to 200 cd/m^2,
// matching the display conditions this package targets; the hue angle this
// space reports (especially for red) is sensitive to this value.
const (
	jzazbzB   = 1.15
	jzazbzG   = 0.66
	jzazbzC1  = 3424.0 / 4096.0
	jzazbzC2  = 2413.0 / 128.0
	jzazbzC3  = 2392.0 / 128.0
	jzazbzN   = 2610.0 / 16384.0
	jzazbzP   = 1.7 * 2523.0 / 32.0
	jzazbzD   = -0.56
	jzazbzD0  = 1.6295499532821566e-11
	PeakLuminance = 200.0
)

var jzazbzLMSMatrix = mathutil.Matrix3{
	{0.41478972, 0.579999, 0.0146480},
	{-0.2015100, 1.120649, 0.0531008},
	{-0.0166008, 0.264800, 0.6684799},
}

var jzazbzIabMatrix = mathutil.Matrix3{
	{0.5, 0.5, 0.0},
	{3.524000, -4.066708, 0.542708},
	{0.199076, 1.096799, -1.295875},
}

var (
	inverseJzazbzLMSMatrix mathutil.Matrix3
	inverseJzazbzIabMatrix mathutil.Matrix3
)

func init() {
	var ok bool
	inverseJzazbzLMSMatrix, ok = jzazbzLMSMatrix.Invert()
	if !ok {
		panic("colorspace: Jzazbz LMS matrix is singular")
	}
	inverseJzazbzIabMatrix, ok = jzazbzIabMatrix.Invert()
	if !ok {
		panic("colorspace: Jzazbz Iab matrix is singular")
	}
}

// PQ applies the perceptual quantizer forward transfer function.
func PQ(input float64) float64 {
	xx := math.Pow(input/10000.0, jzazbzN)
	return math.Pow((jzazbzC1+jzazbzC2*xx)/(1.0+jzazbzC3*xx), jzazbzP)
}

// InversePQ applies the inverse perceptual quantizer transfer function. It
// can return NaN for inputs that lie outside of any representable gamut;
// callers must treat NaN as an extreme out-of-bounds sample, not a panic.
func InversePQ(input float64) float64 {
	xx := math.Pow(input, 1.0/jzazbzP)
	return 10000.0 * math.Pow((jzazbzC1-xx)/((jzazbzC3*xx)-jzazbzC2), 1.0/jzazbzN)
}

// XYZToJzazbz converts a D65-relative XYZ color to Jzazbz.
func XYZToJzazbz(input mathutil.Vec3) mathutil.Vec3 {
	xyzD65 := input.Scale(PeakLuminance)

	xyzPrimeD65 := mathutil.Vec3{
		X: (jzazbzB * xyzD65.X) - ((jzazbzB - 1.0) * xyzD65.Z),
		Y: (jzazbzG * xyzD65.Y) - ((jzazbzG - 1.0) * xyzD65.X),
		Z: xyzD65.Z,
	}

	lms := jzazbzLMSMatrix.MultVec(xyzPrimeD65)
	lmsPrime := mathutil.Vec3{X: PQ(lms.X), Y: PQ(lms.Y), Z: PQ(lms.Z)}
	izazbz := jzazbzIabMatrix.MultVec(lmsPrime)

	jz := (((1.0 + jzazbzD) * izazbz.X) / (1.0 + (jzazbzD * izazbz.X))) - jzazbzD0

	return mathutil.Vec3{X: jz, Y: izazbz.Y, Z: izazbz.Z}
}

// JzazbzToXYZ converts a Jzazbz color back to D65-relative XYZ.
func JzazbzToXYZ(input mathutil.Vec3) mathutil.Vec3 {
	tempIz := input.X + jzazbzD0
	iz := tempIz / (1.0 + jzazbzD - (jzazbzD * tempIz))

	izazbz := mathutil.Vec3{X: iz, Y: input.Y, Z: input.Z}
	lmsPrime := inverseJzazbzIabMatrix.MultVec(izazbz)
	lms := mathutil.Vec3{X: InversePQ(lmsPrime.X), Y: InversePQ(lmsPrime.Y), Z: InversePQ(lmsPrime.Z)}
	xyzPrime := inverseJzazbzLMSMatrix.MultVec(lms)

	var xyz mathutil.Vec3
	xyz.X = (xyzPrime.X + ((jzazbzB - 1.0) * xyzPrime.Z)) / jzazbzB
	xyz.Y = (xyzPrime.Y + ((jzazbzG - 1.0) * xyz.X)) / jzazbzG
	xyz.Z = xyzPrime.Z

	return xyz.Scale(1.0 / PeakLuminance)
}
