/*
NAME
  names.go

DESCRIPTION
  names.go maps the config-file string spellings of a gamut, whitepoint,
  chromatic-adaptation transform, modulator chip, or demodulator chip onto
  their corresponding enum values, so gconfig's flat key/value format can
  stay plain strings without every caller hand-rolling its own switch.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

var gamutNames = map[string]Gamut{
	"srgb":                   GamutSRGB,
	"ntsc1953":                GamutNTSC1953,
	"smpte-c":                GamutSMPTEC,
	"ebu":                     GamutEBU,
	"rec2020":                 GamutRec2020,
	"p22-average":             GamutP22Average,
	"p22-trinitron":           GamutP22Trinitron,
	"p22-ebuish-9300k":        GamutP22EBUish9300K,
	"p22-hitachi-9300k":       GamutP22Hitachi9300K,
	"nec-multisync-c400":      GamutNECMultisyncC400,
	"kds-vs19":                GamutKDSVS19,
	"dell":                    GamutDell,
	"japan-phosphor":          GamutJapanPhosphor,
	"sony-pvm-20m2u":          GamutSonyPVM20M2U,
	"sony-pvm-20l2mdu":        GamutSonyPVM20L2MDU,
	"sony-mix-and-match":      GamutSonyMixAndMatch,
	"trinitron-bohnsack":      GamutTrinitronBohnsack,
}

// ParseGamut looks up a gamut by its config-file name.
func ParseGamut(name string) (Gamut, bool) {
	g, ok := gamutNames[name]
	return g, ok
}

var whitepointNames = map[string]Whitepoint{
	"d65":                        WhitepointD65,
	"9300k27mpcd":                Whitepoint9300K27MPCD,
	"9300k8mpcd":                 Whitepoint9300K8MPCD,
	"illuminant-c":               WhitepointIlluminantC,
	"6900k":                      Whitepoint6900K,
	"7000k":                      Whitepoint7000K,
	"7100k":                      Whitepoint7100K,
	"7250k":                      Whitepoint7250K,
	"d75":                        WhitepointD75,
	"8500k":                      Whitepoint8500K,
	"8800k":                      Whitepoint8800K,
	"bohnsack":                   WhitepointBohnsack,
	"nec-multisync-c400":         WhitepointNECMultisyncC400,
	"kds-vs19":                   WhitepointKDSVS19,
	"mitsubishi-d93-fairchild":   WhitepointMitsubishiD93Fairchild,
	"mitsubishi-d65-fairchild":   WhitepointMitsubishiD65Fairchild,
	"sony-pvm-20l5":              WhitepointSonyPVM20L5,
}

// ParseWhitepoint looks up a whitepoint by its config-file name.
func ParseWhitepoint(name string) (Whitepoint, bool) {
	w, ok := whitepointNames[name]
	return w, ok
}

var catNames = map[string]CATKind{
	"bradford": CATBradford,
	"cat16":    CAT16,
}

// ParseCAT looks up a chromatic adaptation transform by its config-file name.
func ParseCAT(name string) (CATKind, bool) {
	k, ok := catNames[name]
	return k, ok
}

var modulatorNames = map[string]Modulator{
	"cxa1145": ModulatorCXA1145,
	"cxa1645": ModulatorCXA1645,
	"mb3514":  ModulatorMB3514,
	"cxa1219": ModulatorCXA1219,
}

// ParseModulator looks up a modulator chip by its config-file name.
func ParseModulator(name string) (Modulator, bool) {
	m, ok := modulatorNames[name]
	return m, ok
}

var demodulatorNames = map[string]Demodulator{
	"dummy":            DemodulatorDummy,
	"cxa1464as-jp":     DemodulatorCXA1464ASJP,
	"cxa1465as-us":     DemodulatorCXA1465ASUS,
	"cxa1870s-jp":      DemodulatorCXA1870SJP,
	"cxa1870s-us":      DemodulatorCXA1870SUS,
	"cxa2060bs-jp":     DemodulatorCXA2060BSJP,
	"cxa2060bs-us":     DemodulatorCXA2060BSUS,
	"cxa2060bs-pal":    DemodulatorCXA2060BSPAL,
	"cxa2025as-jp":     DemodulatorCXA2025ASJP,
	"cxa2025as-us":     DemodulatorCXA2025ASUS,
	"cxa1213as":        DemodulatorCXA1213AS,
	"tda8362":          DemodulatorTDA8362,
}

// ParseDemodulator looks up a demodulator chip by its config-file name.
func ParseDemodulator(name string) (Demodulator, bool) {
	d, ok := demodulatorNames[name]
	return d, ok
}
