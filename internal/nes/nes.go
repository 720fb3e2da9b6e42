/*
NAME
  nes.go

DESCRIPTION
  nes.go simulates the NES/Famicom PPU's composite video output at the
  signal level: each (hue, luma, emphasis) palette entry becomes a 12-
  sample-per-cycle composite waveform built from the PPU's own voltage
  table, bandpass- and comb-filtered, then synchronously demodulated back
  to Y'UV and converted to idealized R'G'B'. This reproduces quirks real
  NES hardware has that a naive palette lookup table would miss: the
  phase skew hues 0x2/0x6/0xA pick up from trace layout, the luma boost
  hues 0x4/0x8/0xC get for the same reason, and PAL's per-line phase
  reversal and two-line comb filter.

  Ported from the reference simulation at
  https://github.com/Gumball2415/palgen-persune, by way of a C++
  simulation built on the same signal tables.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nes

import (
	"math"

	"github.com/crtlab/gamutthingy/internal/crt"
	"github.com/crtlab/gamutthingy/internal/mathutil"
)

// signalTable is signal_table_composite[luma][high/low][emphasis] in volts,
// from the NESDev wiki's measured PPU output levels.
var signalTable = [4][2][2]float64{
	{{0.616, 0.500}, {0.228, 0.192}},
	{{0.840, 0.676}, {0.312, 0.256}},
	{{1.100, 0.896}, {0.552, 0.448}},
	{{1.100, 0.896}, {0.880, 0.712}},
}

var (
	compositeBlack       = signalTable[1][1][0]
	compositeWhite       = signalTable[3][0][0]
	signalWhitePoint     = 140.0 * (compositeWhite - compositeBlack)
	colorburstAmpCorrect = 40.0 / (140.0 * (0.524 - 0.148))
)

// Params configures a Simulation.
type Params struct {
	PALMode                  bool
	ColorburstAmpCorrection  bool
	PhaseSkew26A             float64 // degrees; trace-layout skew for hues 0x2/0x6/0xA. ~4.5 is typical.
	LumaBoost48C             float64 // IRE; trace-layout luma boost for hues 0x4/0x8/0xC. ~1.0 is typical.
	PhaseSkewPerLumaStep     float64 // degrees; varies by PPU revision: 2C02E ~-2.5, 2C02G ~-5, 2C07 ~10.
	Precision                crt.Precision
}

// Simulation is a configured NES PPU composite signal simulator.
type Simulation struct {
	p        Params
	yuvToRGB mathutil.Matrix3
}

// New builds a Simulation, precomputing the idealized YUV->R'G'B' matrix
// the demodulated signal is finally converted through.
func New(p Params) (Simulation, error) {
	yuvToRGB, err := crt.MakeIdealYUVToRGB(p.Precision)
	if err != nil {
		return Simulation{}, err
	}
	return Simulation{p: p, yuvToRGB: yuvToRGB}, nil
}

func palPhase(hue int) int {
	if hue >= 1 && hue <= 12 {
		return mod(-1*(hue-5), 12)
	}
	return hue
}

func inColorPhase(hue, phase int, pal bool) bool {
	if pal {
		return mod(palPhase(hue)+phase, 12) < 6
	}
	return mod(hue+phase, 12) < 6
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// encodeComposite returns the composite signal amplitude, in volts, for one
// sample phase of a given (hue, luma, emphasis) palette entry. backwards
// selects the phase-reversed waveform PAL encodes on alternating lines.
func (s Simulation) encodeComposite(emphasis, luma, hue, wavePhase int, backwards bool) float64 {
	lumaIndex := luma
	if hue >= 0xE {
		lumaIndex = 0x1
	}
	if lumaIndex < 0 {
		lumaIndex = 0
	} else if lumaIndex > 3 {
		lumaIndex = 3
	}

	wavemode := s.p.PALMode && backwards

	var waveLevel int
	switch {
	case hue == 0x0:
		waveLevel = 0
	case hue >= 0xD:
		waveLevel = 1
	default:
		if inColorPhase(hue, wavePhase, wavemode) {
			waveLevel = 0
		} else {
			waveLevel = 1
		}
	}

	empOn := hue < 0xE && (
		(emphasis&1 != 0 && inColorPhase(0xC, wavePhase, wavemode)) ||
			(emphasis&2 != 0 && inColorPhase(0x4, wavePhase, wavemode)) ||
			(emphasis&4 != 0 && inColorPhase(0x8, wavePhase, wavemode)))
	empLevel := 0
	if empOn {
		empLevel = 1
	}

	return signalTable[lumaIndex][waveLevel][empLevel]
}

// ToYUV simulates the full composite encode/bandpass/comb/demodulate chain
// for one (hue, luma, emphasis) palette entry and returns the result as
// idealized Y'UV, normalized so the simulator's own white point maps to 1.0
// (out-of-range excursions are left as-is; the NES palette genuinely
// produces a few).
func (s Simulation) ToYUV(hue, luma, emphasis int) mathutil.Vec3 {
	var voltageBuf, voltageBufB [12]float64
	for phase := 0; phase < 12; phase++ {
		voltageBuf[phase] = s.encodeComposite(emphasis, luma, hue, phase, false)
		if s.p.PALMode {
			next := mod(phase+2, 12)
			voltageBufB[next] = s.encodeComposite(emphasis, luma, hue, next, true)
		}
	}

	phaseSkew1 := 0.0
	if hue == 0x2 || hue == 0x6 || hue == 0xA {
		phaseSkew1 = s.p.PhaseSkew26A * math.Pi / 180.0
	}
	lumaBoost := 0.0
	if hue == 0x4 || hue == 0x8 || hue == 0xC {
		lumaBoost = s.p.LumaBoost48C
	}
	phaseSkew2 := float64(luma) * s.p.PhaseSkewPerLumaStep * math.Pi / 180.0

	for i := 0; i < 12; i++ {
		voltageBuf[i] = 140.0 * (voltageBuf[i] - compositeBlack)
		voltageBufB[i] = 140.0 * (voltageBufB[i] - compositeBlack)
	}

	var avgA, avgB float64
	for i := 0; i < 12; i++ {
		avgA += voltageBuf[i]
		avgB += voltageBufB[i]
	}
	avgA /= 12.0
	avgB /= 12.0

	var bandpass, bandpassB [12]float64
	for i := 0; i < 12; i++ {
		bandpass[i] = voltageBuf[i] - avgA
		bandpassB[i] = voltageBufB[i] - avgB
	}

	var uComb, vComb [12]float64
	if s.p.PALMode {
		for i := 0; i < 12; i++ {
			uComb[i] = (bandpass[i] + bandpassB[i]) / 2.0
			vComb[i] = (bandpass[i] - bandpassB[i]) / 2.0
		}
	} else {
		uComb = bandpass
		vComb = bandpass
	}

	colorburstPhase := 8.0
	if s.p.PALMode {
		colorburstPhase = 7.5
	}
	saturationCorrection := 2.0
	if s.p.ColorburstAmpCorrection {
		saturationCorrection = 2.0 * colorburstAmpCorrect
	}

	var uOut, vOut float64
	for i := 0; i < 12; i++ {
		angle := ((2.0 * math.Pi) / 12.0 * (float64(i) - 1.0 - colorburstPhase - 0.5)) - phaseSkew1 + phaseSkew2
		uDecode := saturationCorrection * math.Sin(angle)
		vDecode := saturationCorrection * math.Cos(angle)
		uOut += uComb[i] * uDecode
		vOut += vComb[i] * vDecode
	}
	uOut /= 12.0
	vOut /= 12.0

	yOut := avgA
	if s.p.PALMode {
		yOut = 0
		for i := 0; i < 12; i++ {
			yOut += voltageBuf[i] - bandpass[i]
		}
		yOut /= 12.0
	}
	yOut += lumaBoost

	return mathutil.Vec3{
		X: yOut / signalWhitePoint,
		Y: uOut / signalWhitePoint,
		Z: vOut / signalWhitePoint,
	}
}

// ToRGB is ToYUV composed with the idealized YUV->R'G'B' conversion.
func (s Simulation) ToRGB(hue, luma, emphasis int) mathutil.Vec3 {
	yuv := s.ToYUV(hue, luma, emphasis)
	return s.yuvToRGB.MultVec(yuv)
}
