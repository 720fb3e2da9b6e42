/*
NAME
  npm.go

DESCRIPTION
  npm.go builds the Normalized Primary Matrix (NPM) that converts linear
  RGB in a set of primaries to CIE XYZ, following the construction in
  Poynton's "Digital Video and HD" and used by every ICC profile: the raw
  primary matrix P is scaled by normalization factors C chosen so that
  white (1,1,1) maps to the gamut's whitepoint in XYZ. It also builds the
  Bradford/CAT16 Von Kries-style chromatic adaptation needed to compare two
  gamuts with different whitepoints in a shared D65-relative space.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import (
	"fmt"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

// D65 is the standard daylight reference whitepoint in xyz.
var D65 = mathutil.Vec3{X: 0.312713, Y: 0.329016, Z: 0.358271}

// NPM holds a gamut's RGB<->XYZ conversion matrices, both in the gamut's
// native whitepoint and (when chromatic adaptation is needed) adapted to
// D65.
type NPM struct {
	Matrix        mathutil.Matrix3
	InverseMatrix mathutil.Matrix3

	AdaptedMatrix        mathutil.Matrix3
	InverseAdaptedMatrix mathutil.Matrix3
	Adapted              bool
}

// BuildNPM constructs the NPM for a gamut with the given red/green/blue
// primaries and whitepoint (all in xyz). When needsAdapt is true, it also
// builds the whitepoint-to-D65 adapted matrices using cat.
func BuildNPM(red, green, blue, whitepoint mathutil.Vec3, needsAdapt bool, cat tables.CATKind) (NPM, error) {
	matrixP := mathutil.Matrix3{
		{red.X, green.X, blue.X},
		{red.Y, green.Y, blue.Y},
		{red.Z, green.Z, blue.Z},
	}
	inverseMatrixP, ok := matrixP.Invert()
	if !ok {
		return NPM{}, fmt.Errorf("colorspace: primary matrix is not invertible")
	}

	matrixW := mathutil.Vec3{X: whitepoint.X / whitepoint.Y, Y: 1.0, Z: whitepoint.Z / whitepoint.Y}
	normalization := inverseMatrixP.MultVec(matrixW)
	matrixC := mathutil.Diag(normalization)
	matrixNPM := matrixP.Mult(matrixC)

	inverseMatrixNPM, ok := matrixNPM.Invert()
	if !ok {
		return NPM{}, fmt.Errorf("colorspace: NPM matrix is not invertible")
	}

	out := NPM{Matrix: matrixNPM, InverseMatrix: inverseMatrixNPM}
	if !needsAdapt {
		return out, nil
	}

	catMatrix := cat.Matrix()
	inverseCATMatrix, ok := catMatrix.Invert()
	if !ok {
		return NPM{}, fmt.Errorf("colorspace: chromatic adaptation matrix is not invertible")
	}

	destMatrixW := mathutil.Vec3{X: D65.X / D65.Y, Y: 1.0, Z: D65.Z / D65.Y}
	sourceRGB := catMatrix.MultVec(matrixW)
	destRGB := catMatrix.MultVec(destMatrixW)

	coneResponseScale := mathutil.Diag(mathutil.Vec3{
		X: destRGB.X / sourceRGB.X,
		Y: destRGB.Y / sourceRGB.Y,
		Z: destRGB.Z / sourceRGB.Z,
	})

	matrixMtoD65 := inverseCATMatrix.Mult(coneResponseScale).Mult(catMatrix)
	adaptedMatrix := matrixMtoD65.Mult(matrixNPM)
	inverseAdaptedMatrix, ok := adaptedMatrix.Invert()
	if !ok {
		return NPM{}, fmt.Errorf("colorspace: chromatically adapted NPM matrix is not invertible")
	}

	out.AdaptedMatrix = adaptedMatrix
	out.InverseAdaptedMatrix = inverseAdaptedMatrix
	out.Adapted = true
	return out, nil
}

// RGBToXYZ converts linear RGB to XYZ, using the D65-adapted matrix when
// one was built.
func (n NPM) RGBToXYZ(rgb mathutil.Vec3) mathutil.Vec3 {
	if n.Adapted {
		return n.AdaptedMatrix.MultVec(rgb)
	}
	return n.Matrix.MultVec(rgb)
}

// XYZToRGB converts XYZ to linear RGB, using the D65-adapted inverse matrix
// when one was built.
func (n NPM) XYZToRGB(xyz mathutil.Vec3) mathutil.Vec3 {
	if n.Adapted {
		return n.InverseAdaptedMatrix.MultVec(xyz)
	}
	return n.InverseMatrix.MultVec(xyz)
}
