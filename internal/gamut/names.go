/*
NAME
  names.go

DESCRIPTION
  names.go maps the config-file string spellings of a map direction or
  Spiral CARISMA scale mode onto their enum values, the same way
  internal/tables/names.go does for its own enums, so cmd/gamutthingy can
  stay on gconfig's plain strings without hand-rolling a switch.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gamut

var mapDirectionNames = map[string]MapDirection{
	"cusp":  MapGCUSP,
	"gcusp": MapGCUSP,
	"hlpcm": MapHLPCM,
	"vp":    MapVP,
	"vpr":   MapVPR,
	"vprc":  MapVPRC,
}

// ParseMapDirection looks up a MapDirection by its config-file name.
func ParseMapDirection(name string) (MapDirection, bool) {
	d, ok := mapDirectionNames[name]
	return d, ok
}

var scaleModeNames = map[string]ScaleMode{
	"exponential":   ScaleModeExponential,
	"cubic-hermite": ScaleModeCubicHermite,
}

// ParseScaleMode looks up a Spiral CARISMA ScaleMode by its config-file name.
func ParseScaleMode(name string) (ScaleMode, bool) {
	m, ok := scaleModeNames[name]
	return m, ok
}

var safeZoneNames = map[string]SafeZoneType{
	"delta-based": SafeZoneDeltaBased,
	"dest-based":  SafeZoneDestBased,
}

// ParseSafeZoneType looks up a SafeZoneType by its config-file name.
func ParseSafeZoneType(name string) (SafeZoneType, bool) {
	z, ok := safeZoneNames[name]
	return z, ok
}
