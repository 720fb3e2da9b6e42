/*
NAME
  ntsc.go

DESCRIPTION
  ntsc.go builds the R'G'B'<->R'G'B' matrices an NTSC CRT emulation needs:
  the "modulator" matrix describing what an encoder jungle chip actually
  put on the composite subcarrier (decoded back through an idealized
  demodulator), and the "demodulator" matrix describing how a decoder chip
  recovered R'G'B' from its datasheet's demodulation axes (fed from an
  idealized encoder). Real chips rarely demodulate at the textbook
  0/90-degree B-Y/R-Y axes with unit gain; datasheets specify whatever
  axis/gain set the designers found gave the best flesh tones, which is
  what makes two TVs show the same broadcast differently.

  The seminal text on this correction is Parker, "An Analysis of the
  Necessary Decoder Corrections for Color Receiver Operation with
  Non-Standard Receiver Primaries" (1966). The composition used here runs
  through an idealized matrix on the other side of the chip instead of
  Parker's own normalization, which piles all the rounding error on blue.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crt

import (
	"math"

	"github.com/pkg/errors"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

// Precision selects which NTSC 1953 white-balance weights the idealized
// Y'UV matrices are built from. Hardware datasheets of different eras
// truncated them differently, and the truncation is visible in the output.
type Precision int

const (
	// PrecisionCrap uses the 2-digit weights from the 1953 standard
	// (0.30, 0.59, 0.11).
	PrecisionCrap Precision = iota
	// PrecisionMid uses the 3-digit weights from SMPTE-C 170M 1994
	// (0.299, 0.587, 0.114).
	PrecisionMid
	// PrecisionFull computes the exact weights from the 1953 primaries and
	// Illuminant C, the recommended default.
	PrecisionFull
)

// WhiteBalance1953 returns the NTSC 1953 luma weights (wr, wg, wb) at the
// requested precision. The full-precision tier derives them from the NPM of
// the 1953 primaries at Illuminant C, the same construction the gamut
// descriptors use.
func WhiteBalance1953(p Precision) (wr, wg, wb float64, err error) {
	switch p {
	case PrecisionCrap:
		return 0.30, 0.59, 0.11, nil
	case PrecisionMid:
		return 0.299, 0.587, 0.114, nil
	}

	prim := tables.GamutPrimaries[tables.GamutNTSC1953]
	matrixP := mathutil.Matrix3{
		{prim.R[0], prim.G[0], prim.B[0]},
		{prim.R[1], prim.G[1], prim.B[1]},
		{prim.R[2], prim.G[2], prim.B[2]},
	}
	inverseP, ok := matrixP.Invert()
	if !ok {
		return 0, 0, 0, errors.New("crt: NTSC 1953 primary matrix is not invertible")
	}
	wp := tables.WhitepointXY[tables.WhitepointIlluminantC]
	wz := 1.0 - wp[0] - wp[1]
	matrixW := mathutil.Vec3{X: wp[0] / wp[1], Y: 1.0, Z: wz / wp[1]}
	normalization := inverseP.MultVec(matrixW)
	npm := matrixP.Mult(mathutil.Diag(normalization))
	return npm[1][0], npm[1][1], npm[1][2], nil
}

// MakeIdealRGBToYUV builds the textbook gamma-R'G'B'-to-Y'UV matrix at the
// requested precision: Y' by the 1953 weights, then B-Y and R-Y scaled down
// to U and V.
func MakeIdealRGBToYUV(p Precision) (mathutil.Matrix3, error) {
	wr, wg, wb, err := WhiteBalance1953(p)
	if err != nil {
		return mathutil.Matrix3{}, err
	}
	rgbToYByRy := mathutil.Matrix3{
		{wr, wg, wb},
		{-wr, -wg, wr + wg},
		{wg + wb, -wg, -wb},
	}
	scale := mathutil.Matrix3{
		{1, 0, 0},
		{0, tables.Udownscale, 0},
		{0, 0, tables.Vdownscale},
	}
	return scale.Mult(rgbToYByRy), nil
}

// MakeIdealYUVToRGB inverts MakeIdealRGBToYUV's matrix.
func MakeIdealYUVToRGB(p Precision) (mathutil.Matrix3, error) {
	fwd, err := MakeIdealRGBToYUV(p)
	if err != nil {
		return mathutil.Matrix3{}, err
	}
	inv, ok := fwd.Invert()
	if !ok {
		return mathutil.Matrix3{}, errors.New("crt: ideal RGB-to-YUV matrix is not invertible")
	}
	return inv, nil
}

// MakeVanillaGreen computes the unmodified (angle, gain) a demodulator's
// green axis has when G-Y is derived purely by the standard luma matrixing
// identity, used to restore datasheet values that were clearly just this
// number truncated.
func MakeVanillaGreen(p Precision) (angle, gain float64, err error) {
	wr, wg, _, err := WhiteBalance1953(p)
	if err != nil {
		return 0, 0, err
	}
	yg := (1.0 + ((1.0 - wg) / wg)) * -1.0 * tables.Vupscale * wr
	xg := (tables.Uupscale * wr) + ((1.0-wg)/wg)*((wr-1.0)*tables.Uupscale)
	gain = math.Hypot(yg, xg) / tables.Uupscale
	angle = math.Atan2(yg, xg)
	// Fix the quadrant: green belongs in the third.
	for angle < math.Pi {
		angle += 0.5 * math.Pi
	}
	for angle > 1.5*math.Pi {
		angle -= 0.5 * math.Pi
	}
	return angle, gain, nil
}

// rowNormalize scales each row of m to sum to 1, compensating for the
// (typically) two decimal places of precision in chip datasheets.
func rowNormalize(m mathutil.Matrix3) mathutil.Matrix3 {
	for row := 0; row < 3; row++ {
		sum := m[row][0] + m[row][1] + m[row][2]
		m[row][0] /= sum
		m[row][1] /= sum
		m[row][2] /= sum
	}
	return m
}

// BuildModulatorMatrix builds the R'G'B'-to-R'G'B' matrix describing what
// an encoder chip's actual subcarrier amplitudes and phases do to a signal
// decoded by an idealized receiver. The datasheet's color ratios are
// quoted against the burst amplitude, so they're rescaled onto the Y'
// scale by the burst-peak-to-white voltage ratio (0.2 when everything is
// to spec, but datasheets aren't always to spec).
func BuildModulatorMatrix(p tables.ModulatorParams, precision Precision) (mathutil.Matrix3, error) {
	redAngle := p.AngleDeg[0] * math.Pi / 180
	greenAngle := p.AngleDeg[1] * math.Pi / 180
	blueAngle := p.AngleDeg[2] * math.Pi / 180

	burstVpp := p.Level[0]
	maxWhiteV := p.Level[1]
	burstPeakOverWhite := burstVpp / (2.0 * maxWhiteV)

	redMult := p.Ratio[0] * burstPeakOverWhite
	greenMult := p.Ratio[1] * burstPeakOverWhite
	blueMult := p.Ratio[2] * burstPeakOverWhite

	wr, wg, wb, err := WhiteBalance1953(precision)
	if err != nil {
		return mathutil.Matrix3{}, err
	}
	rgbToYUV := mathutil.Matrix3{
		{wr, wg, wb},
		{redMult * math.Cos(redAngle), greenMult * math.Cos(greenAngle), blueMult * math.Cos(blueAngle)},
		{redMult * math.Sin(redAngle), greenMult * math.Sin(greenAngle), blueMult * math.Sin(blueAngle)},
	}

	idealYUVToRGB, err := MakeIdealYUVToRGB(precision)
	if err != nil {
		return mathutil.Matrix3{}, err
	}
	return rowNormalize(idealYUVToRGB.Mult(rgbToYUV)), nil
}

// BlueRenormPolicy selects whether BuildDemodulatorMatrix rescales a chip's
// gains when its blue axis departs from the textbook 0 degrees / unit gain.
// The CXA1213AS looks more plausible NOT renormalized while the TDA8362
// looks wildly wrong unless it IS, so the decision is punted to the user
// rather than defaulted.
type BlueRenormPolicy int

const (
	// BlueRenormNone never renormalizes.
	BlueRenormNone BlueRenormPolicy = iota
	// BlueRenormInsane renormalizes only when blue has both a non-zero
	// angle and a non-unit gain.
	BlueRenormInsane
	// BlueRenormAngleNotZero renormalizes when blue's angle is non-zero.
	BlueRenormAngleNotZero
	// BlueRenormGainNotOne renormalizes when blue's gain departs from 1.0.
	BlueRenormGainNotOne
	// BlueRenormAny renormalizes when either departs.
	BlueRenormAny
)

// DemodulatorOptions are the knobs BuildDemodulatorMatrix applies on top of
// the raw datasheet row.
type DemodulatorOptions struct {
	// Autofix restores full-precision values where a datasheet number is
	// clearly a truncation: a red gain in [0.55, 0.57) really meant the
	// exact V/U upscale ratio, and a green axis near 236 degrees / 0.34
	// gain really meant the derived "vanilla green".
	Autofix bool
	// HueOffsetDeg is the analog hue knob, added to all three axis angles
	// after autocorrection but before renormalization.
	HueOffsetDeg float64
	// Renorm is the blue-renormalization policy.
	Renorm BlueRenormPolicy
	// Dummy marks the no-correction table row, whose autofixes always run.
	Dummy bool
}

// BuildDemodulatorMatrix builds the R'G'B'-to-R'G'B' matrix describing how
// a decoder chip's demodulation axes recover color from an idealized
// encoder's signal: depolarize each axis's (angle, gain) to UV coordinates,
// assemble the Y'UV-to-R'G'B' matrix from the (1, x, y) rows, compose with
// the idealized R'G'B'-to-Y'UV matrix, and row-normalize.
func BuildDemodulatorMatrix(p tables.DemodulatorParams, opts DemodulatorOptions, precision Precision) (mathutil.Matrix3, error) {
	redAngle := p.AngleDeg[0] * math.Pi / 180
	greenAngle := p.AngleDeg[1] * math.Pi / 180
	blueAngle := p.AngleDeg[2] * math.Pi / 180
	redGain := p.Gain[0]
	greenGain := p.Gain[1]
	blueGain := p.Gain[2]

	if opts.Autofix || opts.Dummy {
		if redGain >= 0.55 && redGain < 0.57 {
			redGain = tables.Vupscale / tables.Uupscale
		}
		gAngleFix := p.AngleDeg[1] >= 235.0 && p.AngleDeg[1] <= 237.0
		gGainFix := greenGain >= 0.34 && greenGain <= 0.35
		if gAngleFix || gGainFix {
			vAngle, vGain, err := MakeVanillaGreen(precision)
			if err != nil {
				return mathutil.Matrix3{}, err
			}
			if gAngleFix {
				greenAngle = vAngle
			}
			if gGainFix {
				greenGain = vGain
			}
		}
	}

	// The hue knob runs after autocorrection (it would move the green
	// angle out of the fixable window) but before renormalization (a
	// rotated blue axis may be exactly why renormalization is wanted).
	if opts.HueOffsetDeg != 0 {
		offset := opts.HueOffsetDeg * math.Pi / 180
		redAngle += offset
		greenAngle += offset
		blueAngle += offset
	}

	// Gains are normalized to blue on every chip whose blue gain isn't
	// near the raw 2.03 upscale; 1.8 is a safe cutoff between the two.
	if blueGain < 1.8 {
		normFactor := tables.Uupscale
		weirdGain := blueGain != 1.0
		weirdAngle := blueAngle != 0.0
		doRenorm := false
		switch opts.Renorm {
		case BlueRenormInsane:
			doRenorm = weirdGain && weirdAngle
		case BlueRenormAngleNotZero:
			doRenorm = weirdAngle
		case BlueRenormGainNotOne:
			doRenorm = weirdGain
		case BlueRenormAny:
			doRenorm = weirdGain || weirdAngle
		}
		if doRenorm {
			// The U/V upscale factors form an ellipse; the upscale at
			// blue's actual angle is the ellipse's radius there.
			aUpscale := tables.Uupscale
			if weirdAngle {
				sin, cos := math.Sin(blueAngle), math.Cos(blueAngle)
				aUpscale = (tables.Uupscale * tables.Vupscale) /
					math.Sqrt((tables.Uupscale*tables.Uupscale*sin*sin)+(tables.Vupscale*tables.Vupscale*cos*cos))
			}
			normFactor = aUpscale / blueGain
		}
		redGain *= normFactor
		greenGain *= normFactor
		blueGain *= normFactor
	}

	yuvToRGB := mathutil.Matrix3{
		{1.0, redGain * math.Cos(redAngle), redGain * math.Sin(redAngle)},
		{1.0, greenGain * math.Cos(greenAngle), greenGain * math.Sin(greenAngle)},
		{1.0, blueGain * math.Cos(blueAngle), blueGain * math.Sin(blueAngle)},
	}

	idealRGBToYUV, err := MakeIdealRGBToYUV(precision)
	if err != nil {
		return mathutil.Matrix3{}, err
	}
	return rowNormalize(yuvToRGB.Mult(idealRGBToYUV)), nil
}
