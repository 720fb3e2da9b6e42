/*
NAME
  ucs.go

DESCRIPTION
  ucs.go implements the uniform-chromaticity-scale transforms used to apply
  MPCD (minimum perceptible color difference) offsets to a whitepoint: the
  CIE1960 UCS and two competing formulations of Judd's 1935 UCS (a direct
  port of Judd's own trilinear construction, and MacAdam's projective uv
  approximation of it).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import "github.com/crtlab/gamutthingy/internal/mathutil"

// XYToCIE1960UV converts CIE1931 xy to CIE1960 UCS uv.
func XYToCIE1960UV(input mathutil.Vec2) mathutil.Vec2 {
	divisor := (12.0 * input.Y) - (2.0 * input.X) + 3.0
	return mathutil.Vec2{X: (4.0 * input.X) / divisor, Y: (6.0 * input.Y) / divisor}
}

// CIE1960UVToXY converts CIE1960 UCS uv back to CIE1931 xy.
func CIE1960UVToXY(input mathutil.Vec2) mathutil.Vec2 {
	divisor := (2.0 * input.X) - (8.0 * input.Y) + 4.0
	return mathutil.Vec2{X: (3.0 * input.X) / divisor, Y: (2.0 * input.Y) / divisor}
}

// juddMatrix is the trilinear-to-RGB-overscore matrix from Judd's 1935
// paper, "A Maxwell Triangle Yielding Uniform Chromaticity Scales."
var juddMatrix = mathutil.Matrix3{
	{3.1956, 2.4478, -0.1434},
	{-2.5455, 7.0492, 0.9963},
	{0.0, 0.0, 1.0},
}

// XYToJuddXY converts CIE1931 xy to Judd's 1935 UCS, expressed in his own
// cartesian equivalent of the trilinear coordinates in his paper's appendix.
// Despite the name this is not the same space as CIE1931 xy.
func XYToJuddXY(input mathutil.Vec2) mathutil.Vec2 {
	z := 1.0 - input.X - input.Y
	xyz := mathutil.Vec3{X: input.X / input.Y, Y: 1.0, Z: z / input.Y}

	rgbOverscore := juddMatrix.MultVec(xyz)
	sum := rgbOverscore.X + rgbOverscore.Y + rgbOverscore.Z
	g := rgbOverscore.Y / sum
	b := rgbOverscore.Z / sum

	x := ((2.0 * b) + g) / sqrt3
	return mathutil.Vec2{X: x, Y: g}
}

// JuddXYToXY is the inverse of XYToJuddXY.
func JuddXYToXY(input mathutil.Vec2) mathutil.Vec2 {
	g := input.Y
	b := ((sqrt3 * input.X) - input.Y) / 2.0
	r := 1.0 - g - b
	rgb := mathutil.Vec3{X: r, Y: g, Z: b}

	inverseJuddMatrix, ok := juddMatrix.Invert()
	if !ok {
		return mathutil.Vec2{}
	}
	xyz := inverseJuddMatrix.MultVec(rgb)

	sum := xyz.X + xyz.Y + xyz.Z
	return mathutil.Vec2{X: xyz.X / sum, Y: xyz.Y / sum}
}

// MacAdam's 1937 projective transform, given as an equivalent xy-to-uv
// approximation of Judd's 1935 UCS in "Quantitative Data and Methods for
// Colorimetry," J. Opt. Soc. Am. Vol 34, No. 11, p677 (Nov 1944).
const (
	juddMacAdamA = 0.4661
	juddMacAdamB = 0.1593
	juddMacAdamC = -0.15735
	juddMacAdamD = 0.2424
	juddMacAdamE = 0.6581
)

// XYToJuddMacAdamUV converts CIE1931 xy to the MacAdam uv approximation of
// Judd's 1935 UCS.
func XYToJuddMacAdamUV(input mathutil.Vec2) mathutil.Vec2 {
	denom := input.Y + (juddMacAdamC * input.X) + juddMacAdamD
	u := ((juddMacAdamA * input.X) + (juddMacAdamB * input.Y)) / denom
	v := (juddMacAdamE * input.Y) / denom
	return mathutil.Vec2{X: u, Y: v}
}

// JuddMacAdamUVToXY is the inverse of XYToJuddMacAdamUV.
func JuddMacAdamUVToXY(input mathutil.Vec2) mathutil.Vec2 {
	y := (input.Y * juddMacAdamD) / (juddMacAdamE - input.Y - ((juddMacAdamC * ((juddMacAdamE * input.X) - (input.Y * juddMacAdamB))) / juddMacAdamA))
	x := y * (((juddMacAdamE * input.X) - (juddMacAdamB * input.Y)) / (juddMacAdamA * input.Y))
	return mathutil.Vec2{X: x, Y: y}
}

const sqrt3 = 1.7320508075688772
