/*
NAME
  primaries.go

DESCRIPTION
  primaries.go lists the named RGB primary sets (color gamuts) a gamut
  boundary descriptor or CRT emulation may be built from, as CIE1931 xyz
  chromaticity triples for red, green and blue. Most z values are the
  expected 1-x-y, but they are carried verbatim rather than derived: at
  least one entry (the ARIB TR B9 "Japan Specific Phosphor" blue) departs
  from that relation in its source document, and the NPM construction
  this table feeds needs to reproduce that quirk rather than silently
  correct it.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

// Gamut names a preset RGB primary set.
type Gamut int

const (
	GamutSRGB Gamut = iota
	GamutNTSC1953
	GamutSMPTEC
	GamutEBU
	GamutRec2020
	GamutP22Average
	GamutP22Trinitron
	GamutP22EBUish9300K
	GamutP22Hitachi9300K
	GamutNECMultisyncC400
	GamutKDSVS19
	GamutDell
	GamutJapanPhosphor
	GamutSonyPVM20M2U
	GamutSonyPVM20L2MDU
	GamutSonyMixAndMatch
	GamutTrinitronBohnsack
)

// Primaries is the xyz chromaticity of a red/green/blue primary triple.
type Primaries struct {
	R, G, B [3]float64
}

// GamutPrimaries is Primaries by Gamut.
var GamutPrimaries = map[Gamut]Primaries{
	GamutSRGB:              {R: [3]float64{0.64, 0.33, 0.03}, G: [3]float64{0.3, 0.6, 0.1}, B: [3]float64{0.15, 0.06, 0.79}},
	GamutNTSC1953:          {R: [3]float64{0.67, 0.33, 0.0}, G: [3]float64{0.21, 0.71, 0.08}, B: [3]float64{0.14, 0.08, 0.78}},
	GamutSMPTEC:            {R: [3]float64{0.63, 0.34, 0.03}, G: [3]float64{0.31, 0.595, 0.095}, B: [3]float64{0.155, 0.07, 0.775}},
	GamutEBU:               {R: [3]float64{0.64, 0.33, 0.03}, G: [3]float64{0.29, 0.6, 0.11}, B: [3]float64{0.15, 0.06, 0.79}},
	GamutRec2020:           {R: [3]float64{0.708, 0.292, 0.0}, G: [3]float64{0.17, 0.797, 0.033}, B: [3]float64{0.131, 0.046, 0.823}},
	GamutP22Average:        {R: [3]float64{0.625, 0.350, 0.025}, G: [3]float64{0.280, 0.605, 0.115}, B: [3]float64{0.152, 0.062, 0.786}},
	GamutP22Trinitron:      {R: [3]float64{0.621, 0.34, 0.039}, G: [3]float64{0.281, 0.606, 0.113}, B: [3]float64{0.152, 0.067, 0.781}},
	GamutP22EBUish9300K:    {R: [3]float64{0.657, 0.338, 0.005}, G: [3]float64{0.297, 0.609, 0.094}, B: [3]float64{0.148, 0.054, 0.798}},
	GamutP22Hitachi9300K:   {R: [3]float64{0.624, 0.339, 0.037}, G: [3]float64{0.285, 0.604, 0.111}, B: [3]float64{0.150, 0.065, 0.785}},
	GamutNECMultisyncC400:  {R: [3]float64{0.610, 0.35, 0.04}, G: [3]float64{0.307, 0.595, 0.098}, B: [3]float64{0.15, 0.065, 0.785}},
	GamutKDSVS19:           {R: [3]float64{0.625, 0.34, 0.035}, G: [3]float64{0.285, 0.605, 0.11}, B: [3]float64{0.15, 0.065, 0.785}},
	GamutDell:              {R: [3]float64{0.625, 0.34, 0.035}, G: [3]float64{0.275, 0.605, 0.12}, B: [3]float64{0.15, 0.065, 0.785}},
	GamutJapanPhosphor:     {R: [3]float64{0.618, 0.35, 0.032}, G: [3]float64{0.29, 0.6, 0.11}, B: [3]float64{0.15, 0.06, 0.97}},
	GamutSonyPVM20M2U:      {R: [3]float64{0.63, 0.345, 0.025}, G: [3]float64{0.285, 0.605, 0.11}, B: [3]float64{0.15, 0.065, 0.785}},
	GamutSonyPVM20L2MDU:    {R: [3]float64{0.625, 0.345, 0.03}, G: [3]float64{0.28, 0.605, 0.115}, B: [3]float64{0.15, 0.065, 0.785}},
	GamutSonyMixAndMatch:   {R: [3]float64{0.63, 0.345, 0.025}, G: [3]float64{0.281, 0.606, 0.113}, B: [3]float64{0.152, 0.067, 0.781}},
	GamutTrinitronBohnsack: {R: [3]float64{0.6233, 0.339, 0.0377}, G: [3]float64{0.2838, 0.5895, 0.1267}, B: [3]float64{0.1519, 0.0669, 0.7812}},
}
