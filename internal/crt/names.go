/*
NAME
  names.go

DESCRIPTION
  names.go maps the config-file string spellings of an NTSC coefficient
  precision tier or blue-renormalization policy onto their enum values,
  the same way internal/tables/names.go does for its own enums.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crt

var precisionNames = map[string]Precision{
	"crap": PrecisionCrap,
	"mid":  PrecisionMid,
	"full": PrecisionFull,
}

// ParsePrecision looks up a Precision by its config-file name.
func ParsePrecision(name string) (Precision, bool) {
	p, ok := precisionNames[name]
	return p, ok
}

var blueRenormNames = map[string]BlueRenormPolicy{
	"none":           BlueRenormNone,
	"angle-not-zero": BlueRenormAngleNotZero,
	"gain-not-one":   BlueRenormGainNotOne,
	"any":            BlueRenormAny,
	"insane":         BlueRenormInsane,
}

// ParseBlueRenormPolicy looks up a BlueRenormPolicy by its config-file name.
func ParseBlueRenormPolicy(name string) (BlueRenormPolicy, bool) {
	p, ok := blueRenormNames[name]
	return p, ok
}
