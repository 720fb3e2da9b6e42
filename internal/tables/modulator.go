/*
NAME
  modulator.go

DESCRIPTION
  modulator.go lists datasheet axis-angle/gain parameters for NTSC
  composite-video encoder ("modulator") jungle chips, used to build the
  synthetic RGB-to-composite matrix a CRT emulation inverts.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

// Modulator names a preset NTSC composite modulator chip.
type Modulator int

const (
	ModulatorCXA1145 Modulator = iota
	ModulatorCXA1645
	ModulatorMB3514
	ModulatorCXA1219
)

// ModulatorParams is a modulator chip's datasheet parameters: the three
// encoding axis angles in degrees, their burst-normalized gain ratios, and
// the assumed burst/white voltage levels (the third entry of Level is
// unused, carried only because the source table is rectangular).
type ModulatorParams struct {
	AngleDeg [3]float64
	Ratio    [3]float64
	Level    [3]float64 // {burst Vpp, white V, unused}
}

var ModulatorInfo = map[Modulator]ModulatorParams{
	ModulatorCXA1145: {
		AngleDeg: [3]float64{104, 241, 347},
		Ratio:    [3]float64{3.16, 2.95, 2.24},
		Level:    [3]float64{2.0 / 7.0, 5.0 / 7.0, 0.0},
	},
	ModulatorCXA1645: {
		AngleDeg: [3]float64{104, 241, 347},
		Ratio:    [3]float64{3.16, 2.95, 2.24},
		Level:    [3]float64{0.25, 5.0 / 7.0, 0.0},
	},
	ModulatorMB3514: {
		AngleDeg: [3]float64{104, 241, 347},
		Ratio:    [3]float64{3.16, 2.95, 2.24},
		Level:    [3]float64{2.0 / 7.0, 5.0 / 7.0, 0.0},
	},
	ModulatorCXA1219: {
		AngleDeg: [3]float64{104, 241, 347},
		Ratio:    [3]float64{2.92, 2.74, 2.08},
		Level:    [3]float64{2.0 / 7.0, 5.0 / 7.0, 0.0},
	},
}
