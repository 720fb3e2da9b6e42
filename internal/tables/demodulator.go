/*
NAME
  demodulator.go

DESCRIPTION
  demodulator.go lists datasheet axis-angle/gain parameters for NTSC
  composite-video decoder ("demodulator") jungle chips, used to build the
  RGB color-correction matrix a CRT emulation's backend applies.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

// Demodulator names a preset NTSC composite demodulator chip/mode.
type Demodulator int

const (
	DemodulatorDummy Demodulator = iota
	DemodulatorCXA1464ASJP
	DemodulatorCXA1465ASUS
	DemodulatorCXA1870SJP
	DemodulatorCXA1870SUS
	DemodulatorCXA2060BSJP
	DemodulatorCXA2060BSUS
	DemodulatorCXA2060BSPAL
	DemodulatorCXA2025ASJP
	DemodulatorCXA2025ASUS
	DemodulatorCXA1213AS
	DemodulatorTDA8362
)

// DemodulatorParams is a demodulator chip/mode's datasheet axis angles in
// degrees (red, green, and blue relative to the burst reference; blue is
// usually but not always 0) and their gains (red, green, blue; blue gain is
// 1.0 in every row here except the TDA8362's 1.14).
type DemodulatorParams struct {
	AngleDeg [3]float64
	Gain     [3]float64
}

// Udownscale/Vdownscale/Uupscale/Vupscale convert between composite U/V and
// the R-Y/B-Y axes a demodulator chip's datasheet actually specifies gains
// against.
const (
	Udownscale = 0.492111
	Vdownscale = 0.877283
	Uupscale   = 1.0 / Udownscale
	Vupscale   = 1.0 / Vdownscale
)

var DemodulatorInfo = map[Demodulator]DemodulatorParams{
	DemodulatorDummy:        {AngleDeg: [3]float64{90, 236, 0}, Gain: [3]float64{0.56, 0.34, 1.0}},
	DemodulatorCXA1464ASJP:  {AngleDeg: [3]float64{98, 243, 0}, Gain: [3]float64{0.78, 0.31, 1.0}},
	DemodulatorCXA1465ASUS:  {AngleDeg: [3]float64{114, 255, 0}, Gain: [3]float64{0.78, 0.31, 1.0}},
	DemodulatorCXA1870SJP:   {AngleDeg: [3]float64{96, 240, 0}, Gain: [3]float64{0.8, 0.3, 1.0}},
	DemodulatorCXA1870SUS:   {AngleDeg: [3]float64{105, 252, 0}, Gain: [3]float64{0.8, 0.3, 1.0}},
	DemodulatorCXA2060BSJP:  {AngleDeg: [3]float64{95, 236, 0}, Gain: [3]float64{0.78, 0.33, 1.0}},
	DemodulatorCXA2060BSUS:  {AngleDeg: [3]float64{102, 236, 0}, Gain: [3]float64{0.78, 0.3, 1.0}},
	DemodulatorCXA2060BSPAL: {AngleDeg: [3]float64{90, 227, 0}, Gain: [3]float64{Vupscale / Uupscale, 0.34, 1.0}},
	DemodulatorCXA2025ASJP:  {AngleDeg: [3]float64{95, 240, 0}, Gain: [3]float64{0.78, 0.3, 1.0}},
	DemodulatorCXA2025ASUS:  {AngleDeg: [3]float64{112, 252, 0}, Gain: [3]float64{0.83, 0.3, 1.0}},
	DemodulatorCXA1213AS:    {AngleDeg: [3]float64{99, 240, 11}, Gain: [3]float64{0.77, 0.3, 1.0}},
	DemodulatorTDA8362:      {AngleDeg: [3]float64{100, 235, -10}, Gain: [3]float64{1.14, 0.3, 1.14}},
}
