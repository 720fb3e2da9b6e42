/*
NAME
  cct.go

DESCRIPTION
  cct.go converts correlated color temperature (CCT) to CIE1931 xy
  chromaticity, on either the CIE daylight locus (the official piecewise
  polynomial, or a 3-branch approximation with a closer fit to D65) or the
  Planckian (blackbody) locus via direct spectral integration against the
  standard observer. It also applies an MPCD (minimum perceptible color
  difference) offset perpendicular to the chosen locus, in any of three
  competing uniform-chromaticity-scale conventions.

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

	"gonum.org/v1/gonum/floats"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

// DaylightLocus selects the CIE daylight locus equations; DaylightLocusDogway
// selects a 3-branch approximation (borrowed from the libretro "grade" CRT
// shader) that fits better near D65; PlanckianLocus integrates a true
// blackbody spectrum against the CIE1931 standard observer.
type Locus int

const (
	DaylightLocus Locus = iota
	DaylightLocusDogway
	PlanckianLocus
)

// MPCDSpace selects which uniform-chromaticity-scale convention an MPCD
// offset is measured in.
type MPCDSpace int

const (
	MPCDCIE1960 MPCDSpace = iota
	MPCDJudd1935
	MPCDJuddMacAdam
)

// Physical constants, 2019 SI redefinition values.
const (
	planckConstant    = 6.62607015e-34
	speedOfLight      = 2.99792458e8
	boltzmannConstant = 1.380649e-23
)

// XYFromCCT computes the xy chromaticity for a correlated color temperature
// on the given locus, then nudges it by mpcd minimum-perceptible-color-
// difference units perpendicular to the locus, measured in mpcdSpace. A
// mpcd of 0 leaves the locus point untouched.
func XYFromCCT(cct float64, locus Locus, mpcd float64, mpcdSpace MPCDSpace) mathutil.Vec3 {
	output := xyFromCCTOnLocus(cct, locus)
	if mpcd == 0.0 {
		return output
	}

	outputXY := mathutil.Vec2{X: output.X, Y: output.Y}
	outputUV := xyToUCS(outputXY, mpcdSpace)

	const delta = 0.5
	plusOne := xyFromCCTOnLocus(cct+delta, locus)
	minusOne := xyFromCCTOnLocus(cct-delta, locus)
	plusOneUV := xyToUCS(mathutil.Vec2{X: plusOne.X, Y: plusOne.Y}, mpcdSpace)
	minusOneUV := xyToUCS(mathutil.Vec2{X: minusOne.X, Y: minusOne.Y}, mpcdSpace)

	// Negative reciprocal of the local slope of the locus, i.e. perpendicular
	// to it, pointing in the direction of increasing MPCD.
	move := mathutil.Vec2{X: -1.0 * (minusOneUV.Y - plusOneUV.Y), Y: minusOneUV.X - plusOneUV.X}
	if mpcdSpace == MPCDJudd1935 {
		move.Y *= -1.0 // Judd's axes are oriented differently.
	}
	move = move.Normalized()

	var mpcdSize float64
	switch mpcdSpace {
	case MPCDCIE1960:
		mpcdSize = 0.0004
	default: // Judd1935 and its MacAdam uv approximation share 0.0005.
		mpcdSize = 0.0005
	}
	move = move.Scale(mpcdSize * mpcd)
	outputUV = outputUV.Add(move)

	outputXY = ucsToXY(outputUV, mpcdSpace)
	z := 1.0 - outputXY.X - outputXY.Y
	return mathutil.Vec3{X: outputXY.X, Y: outputXY.Y, Z: z}
}

func xyToUCS(xy mathutil.Vec2, space MPCDSpace) mathutil.Vec2 {
	switch space {
	case MPCDCIE1960:
		return XYToCIE1960UV(xy)
	case MPCDJudd1935:
		return XYToJuddXY(xy)
	case MPCDJuddMacAdam:
		return XYToJuddMacAdamUV(xy)
	default:
		return xy
	}
}

func ucsToXY(uv mathutil.Vec2, space MPCDSpace) mathutil.Vec2 {
	switch space {
	case MPCDCIE1960:
		return CIE1960UVToXY(uv)
	case MPCDJudd1935:
		return JuddXYToXY(uv)
	case MPCDJuddMacAdam:
		return JuddMacAdamUVToXY(uv)
	default:
		return uv
	}
}

func xyFromCCTOnLocus(cct float64, locus Locus) mathutil.Vec3 {
	switch locus {
	case DaylightLocus:
		return xyFromCCTDaylight(cct)
	case DaylightLocusDogway:
		return xyFromCCTDaylightDogway(cct)
	case PlanckianLocus:
		return xyFromCCTPlanckian(cct)
	default:
		return xyFromCCTDaylight(cct)
	}
}

// xyFromCCTDaylight is the official CIE 15:2004 D-series illuminant
// equation.
func xyFromCCTDaylight(cct float64) mathutil.Vec3 {
	temp3 := 1000.0 / cct
	temp6 := 1000000.0 / (cct * cct)
	temp9 := 1000000000.0 / (cct * cct * cct)

	var x float64
	if cct <= 7000 {
		x = 0.244063 + (0.09911 * temp3) + (2.9678 * temp6) + (-4.6070 * temp9)
	} else {
		x = 0.237040 + (0.24748 * temp3) + (1.9018 * temp6) + (-2.0064 * temp9)
	}
	y := -0.275 + (2.870 * x) - (3.0 * x * x)
	return mathutil.Vec3{X: x, Y: y, Z: 1.0 - x - y}
}

// xyFromCCTDaylightDogway is a 3-branch daylight locus approximation with a
// closer fit to D65 than the official 2-branch equation, borrowed from the
// libretro "grade" CRT shader (origin uncited there).
func xyFromCCTDaylightDogway(cct float64) mathutil.Vec3 {
	temp3 := 1000.0 / cct
	temp6 := 1000000.0 / (cct * cct)
	temp9 := 1000000000.0 / (cct * cct * cct)

	var x float64
	switch {
	case cct < 5500:
		x = 0.244058 + (0.0989971 * temp3) + (2.96545 * temp6) + (-4.59673 * temp9)
	case cct < 8000:
		x = 0.200033 + (0.9545630 * temp3) + (-2.53169 * temp6) + (7.08578 * temp9)
	default:
		x = 0.237045 + (0.2437440 * temp3) + (1.94062 * temp6) + (-2.11004 * temp9)
	}
	y := -0.275275 + (2.87396 * x) - (3.02034 * x * x) + (0.0297408 * x * x * x)
	return mathutil.Vec3{X: x, Y: y, Z: 1.0 - x - y}
}

// xyFromCCTPlanckian integrates a true blackbody spectrum at the given
// temperature against the CIE1931 standard observer, 360-830nm in 5nm
// steps, after Bruce Lindbloom's blackbody calculator, updated to the 2019
// SI redefinition of the Planck and Boltzmann constants.
func xyFromCCTPlanckian(cct float64) mathutil.Vec3 {
	c1 := 2.0 * math.Pi * planckConstant * speedOfLight * speedOfLight
	c2 := (planckConstant * speedOfLight) / boltzmannConstant

	const n = 95
	var spectrum [n]float64
	for i := 0; i < n; i++ {
		nm := float64(tables.ObserverStartNM + i*tables.ObserverStepNM)
		wavelength := nm * 1e-9
		wavelength5 := wavelength * wavelength * wavelength * wavelength * wavelength
		spectrum[i] = c1 / (wavelength5 * (math.Exp(c2/(cct*wavelength)) - 1.0))
	}

	// Tristimulus values are the spectral power distribution's dot product
	// against each standard-observer curve; floats.Dot replaces the
	// hand-rolled multiply-accumulate loop this used to be.
	x := floats.Dot(spectrum[:], tables.CIE1931StdObsX[:])
	y := floats.Dot(spectrum[:], tables.CIE1931StdObsY[:])
	z := floats.Dot(spectrum[:], tables.CIE1931StdObsZ[:])

	sum := floats.Sum([]float64{x, y, z})
	littleX := x / sum
	littleY := y / sum
	return mathutil.Vec3{X: littleX, Y: littleY, Z: 1.0 - littleX - littleY}
}
