/*
NAME
  srgb.go

DESCRIPTION
  srgb.go provides the sRGB and ST.2084 (rec2084/PQ) transfer functions used
  to move pixel data between gamma-encoded and linear-light representations
  before gamut mapping.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import "math"

// Clamp01 clamps input to the closed range [0,1].
func Clamp01(input float64) float64 {
	if input < 0.0 {
		return 0.0
	}
	if input > 1.0 {
		return 1.0
	}
	return input
}

// SRGBToGamma applies the sRGB OETF to a linear-light channel value.
func SRGBToGamma(input float64) float64 {
	if input <= 0.0031308 {
		return Clamp01(input * 12.92)
	}
	if input >= 1.0 {
		// 1.055 - 0.055 rounds to just below 1.0 in float64.
		return 1.0
	}
	return Clamp01((1.055 * math.Pow(input, 1.0/2.4)) - 0.055)
}

// SRGBToLinear applies the sRGB EOTF to a gamma-encoded channel value.
func SRGBToLinear(input float64) float64 {
	if input <= 0.04045 {
		return Clamp01(input / 12.92)
	}
	return Clamp01(math.Pow((input+0.055)/1.055, 2.4))
}

// rec2084 (ST.2084 PQ) constants.
const (
	rec2084M1 = 1305.0 / 8192.0
	rec2084M2 = 2523.0 / 32.0
	rec2084C1 = 107.0 / 128.0
	rec2084C2 = 2413.0 / 128.0
	rec2084C3 = 2392.0 / 128.0
)

// Rec2084ToGamma applies the ST.2084 PQ OETF. maxNits is the luminance that
// input==1.0 is taken to represent, typically 100-200 for SDR content shown
// on an HDR-capable PQ pipeline.
func Rec2084ToGamma(input, maxNits float64) float64 {
	input = Clamp01(input)
	ym1 := math.Pow(input*(maxNits/10000.0), rec2084M1)
	output := math.Pow((rec2084C1+(rec2084C2*ym1))/(1.0+(rec2084C3*ym1)), rec2084M2)
	return Clamp01(output)
}

// Rec2084ToLinear applies the ST.2084 PQ EOTF.
func Rec2084ToLinear(input, maxNits float64) float64 {
	input = Clamp01(input)
	e1overm2 := math.Pow(input, 1.0/rec2084M2)
	top := e1overm2 - rec2084C1
	if top < 0.0 {
		top = 0.0
	}
	output := math.Pow(top/(rec2084C2-(rec2084C3*e1overm2)), 1.0/rec2084M1)
	output *= 10000.0 / maxNits
	return Clamp01(output)
}
