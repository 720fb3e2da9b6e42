/*
NAME
  bt1886.go

DESCRIPTION
  bt1886.go implements the ITU-R BT.1886 Appendix 1 EOTF, parameterized by
  a display's actual measured black level and white level (in cd/m^2 / 100)
  rather than the ideal 0/1 BT.1886 normally assumes. The exponents in the
  Appendix 1 formula are fixed constants (2.6, -0.4, 3.0), not a tunable
  gamma; a separate global gamma trim knob some CRTs were factory-adjusted
  with lives in Descriptor, not here. The "b" offset that makes the curve
  pass exactly through the measured black level has no closed form, so
  NewBT1886 finds it by bisection.

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

	"github.com/ausocean/utils/logging"
)

// BT1886 is a fitted BT.1886 Appendix 1 EOTF instance for one (black level,
// white level) pair.
type BT1886 struct {
	BlackLevel float64
	WhiteLevel float64

	B float64 // offset solved by bisection.
	K float64 // W / (1+b)^2.6
	S float64 // (0.35+b)^-0.4
	I float64 // k * (0.35+b)^2.6; the piecewise breakpoint in linear-light units.

	// ZeroLightClamp clamps the b-shifted input at 0, for profiles whose
	// low R'G'B' clamp already sits exactly at the zero-light level.
	ZeroLightClamp bool
}

// NewBT1886 fits b, k, s, and i to blackLevel and whiteLevel (both relative,
// cd/m^2 divided by 100; whiteLevel normally 1.0). blackLevel == 0 returns
// b == 0 with no iteration (the curve keeps its two segments, the cubic toe
// below 0.35 and the 2.6 power above, with no black offset). Otherwise b is
// bisected over [0,1] against
//
//	(whiteLevel / (1+b)^2.6) * (0.35+b)^-0.4 * b^3 == blackLevel
//
// until the residual is under 1e-16 or 100 iterations have run.
// Physically impossible levels are repaired rather than rejected: negative
// luminosities floor at 0, and black at or above white falls back to the
// 0.001/1.0 defaults.
func NewBT1886(blackLevel, whiteLevel float64, log logging.Logger) BT1886 {
	if blackLevel < 0 {
		blackLevel = 0
	}
	if whiteLevel < 0 {
		whiteLevel = 0
	}
	if blackLevel >= whiteLevel {
		if log != nil {
			log.Warning("crt: black level at or above white level, using defaults",
				"black", blackLevel, "white", whiteLevel)
		}
		blackLevel = 0.001
		whiteLevel = 1.0
	}
	c := BT1886{BlackLevel: blackLevel, WhiteLevel: whiteLevel}
	if blackLevel == 0 {
		c.B = 0
	} else {
		lo, hi := 0.0, 1.0
		guess := 0.0
		for i := 0; i < 100; i++ {
			guess = (lo + hi) * 0.5
			result := (whiteLevel / math.Pow(1.0+guess, 2.6)) * math.Pow(0.35+guess, -0.4) * math.Pow(guess, 3.0)
			if result == blackLevel {
				break
			}
			if math.Abs(result-blackLevel) < 1e-16 {
				break
			}
			if result > blackLevel {
				hi = guess
			} else {
				lo = guess
			}
		}
		c.B = guess
	}
	c.K = whiteLevel / math.Pow(1.0+c.B, 2.6)
	c.S = math.Pow(0.35+c.B, -0.4)
	c.I = c.K * math.Pow(0.35+c.B, 2.6)
	return c
}

// ToLinear applies the forward EOTF: a gamma-encoded signal in [0,1] to the
// linear light this display profile would emit, normalized so blackLevel
// and whiteLevel themselves map to 0 and 1. Negative inputs are handled by
// sign-flipping before the piecewise power curve and restoring the sign
// afterward, matching IEC 61966-2-4's convention rather than NaN-ing.
func (c BT1886) ToLinear(v float64) float64 {
	shifted := v + c.B

	if c.ZeroLightClamp && shifted < 0 {
		shifted = 0
	}

	flip := shifted < 0
	if flip {
		shifted = -shifted
	}

	var out float64
	if shifted < 0.35+c.B {
		out = c.K * c.S * shifted * shifted * shifted
	} else {
		out = c.K * math.Pow(shifted, 2.6)
	}

	if flip {
		out = -out
	}

	out -= c.BlackLevel
	out /= c.WhiteLevel - c.BlackLevel

	return snapUnit(out)
}

// ToGamma applies the inverse EOTF: linear light back to a gamma-encoded
// signal, the algebraic reciprocal of ToLinear's piecewise curve.
func (c BT1886) ToGamma(l float64) float64 {
	shifted := l*(c.WhiteLevel-c.BlackLevel) + c.BlackLevel

	flip := shifted < 0
	if flip {
		shifted = -shifted
	}

	var out float64
	if shifted < c.I {
		out = math.Cbrt((1.0 / c.K) * (1.0 / c.S) * shifted)
	} else {
		out = math.Pow((1.0/c.K)*shifted, 1.0/2.6)
	}

	if flip {
		out = -out
	}

	out -= c.B

	return snapUnit(out)
}

// snapUnit rounds v to exactly 0 or 1 when it lands within 1e-6 of either,
// the same floating-point cleanup the forward and inverse EOTF both apply.
func snapUnit(v float64) float64 {
	if v != 0 && math.Abs(v) < 1e-6 {
		return 0
	}
	if v != 1 && math.Abs(v-1) < 1e-6 {
		return 1
	}
	return v
}
