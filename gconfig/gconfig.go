/*
NAME
  gconfig.go

DESCRIPTION
  gconfig.go parses the flat `key = value` configuration file format the
  pipeline driver is set up from: one assignment per line, blank lines and
  `#`-prefixed comments ignored, values typed by the field they land in
  (string/bool/float64/int) via strconv. Unknown keys and malformed values
  are both reported back to the caller through a single accumulated error
  rather than aborting on the first line, so a user fixing a config gets
  the whole list of problems at once.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gconfig loads the gamutthingy pipeline's configuration surface
// from a flat key/value text file.
package gconfig

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GammaMode selects the transfer function applied before/after mapping.
type GammaMode int

const (
	GammaLinear GammaMode = iota
	GammaSRGB
	GammaRec2084
)

// MapMode selects the overall gamut-mapping strategy.
type MapMode int

const (
	MapClip MapMode = iota
	MapCCCA
	MapCCCB
	MapCCCC
	MapCCCD
	MapCCCE
	MapCompress
	MapExpand
)

// SafeZoneMode names the §6 safe_zone option (distinct from gamut.SafeZoneType,
// which is the geometric parameter it's translated into).
type SafeZoneMode int

const (
	SafeZoneConstDetail SafeZoneMode = iota
	SafeZoneConstFidelity
)

// CRTMode selects whether/where a CRT emulation profile attaches to the
// pipeline.
type CRTMode int

const (
	CRTNone CRTMode = iota
	CRTFront
	CRTBack
)

// Config is the full set of recognized pipeline options. Load starts from
// the zero value of each field (GammaLinear, MapClip, etc.) except for the
// non-zero defaults it sets itself (remap and knee factors, white level,
// saturation, CRT gamma, clamp levels, chip indices, pedestal amount), then
// applies the loaded file.
type Config struct {
	SourceGamut, DestGamut           string
	SourceWhitepoint, DestWhitepoint string
	SourceCustomXY, DestCustomXY     [2]float64
	SourceCustomCCT, DestCustomCCT   float64

	GammaMode GammaMode
	MaxNits   float64

	CATKind string

	MapMode      MapMode
	MapDirection string
	SafeZone     SafeZoneMode

	RemapFactor, RemapLimit, KneeFactor float64
	SoftKnee                            bool

	SpiralCARISMA                                 bool
	SpiralFloor, SpiralCeiling, SpiralExponent     float64
	SpiralScaleMode                                string
	SpiralMaxScale                                 float64

	CRTModeOpt                                  CRTMode
	BlackLevel, WhiteLevel                      float64
	YUVPrecision                                string
	ModulatorIndex, DemodulatorIndex             int
	RenormPolicy                                string
	ClampLow, ClampHigh                         float64
	ClampLowAtZeroLight, ClampHighEnable        bool
	DemodAutofix                                bool
	HueDeg, Saturation, CRTGamma                 float64
	PedestalCrushEnable                         bool
	PedestalAmount                               float64

	NESEnable                 bool
	NESPALMode                bool
	NESColorburstNormalize    bool
	NESSkew26ADeg             float64
	NESLumaBoost48CIRE        float64
	NESPhaseSkewPerLumaDeg    float64
}

// Load reads a flat key/value config file from r. Lines are `key = value`;
// blank lines and lines starting with `#` (after leading whitespace) are
// ignored. Unknown keys and unparseable values are collected and returned
// together as one error.
func Load(r io.Reader) (*Config, error) {
	c := &Config{
		RemapFactor:      0.4,
		RemapLimit:       0.8,
		KneeFactor:       0.2,
		WhiteLevel:       1.0,
		Saturation:       1.0,
		CRTGamma:         1.0,
		ClampLow:         -0.075,
		ClampHigh:        1.1,
		ModulatorIndex:   -1,
		DemodulatorIndex: -1,
		PedestalAmount:   0.075,
	}

	var problems []string
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			problems = append(problems, invalidLine(lineNo, line, "missing '='"))
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := c.set(key, value); err != nil {
			problems = append(problems, invalidLine(lineNo, line, err.Error()))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "gconfig: reading config")
	}
	if len(problems) > 0 {
		return nil, errors.New("gconfig: " + strings.Join(problems, "; "))
	}
	return c, nil
}

func invalidLine(lineNo int, line, reason string) string {
	return "line " + strconv.Itoa(lineNo) + " (" + line + "): " + reason
}

// set dispatches one key/value pair onto c's fields.
func (c *Config) set(key, value string) error {
	switch key {
	case "source_gamut":
		c.SourceGamut = value
	case "dest_gamut":
		c.DestGamut = value
	case "source_whitepoint":
		c.SourceWhitepoint = value
	case "dest_whitepoint":
		c.DestWhitepoint = value
	case "cat_kind":
		c.CATKind = value
	case "map_direction":
		c.MapDirection = value
	case "spiral_scale_mode":
		c.SpiralScaleMode = value
	case "yuv_precision":
		c.YUVPrecision = value
	case "renorm_policy":
		c.RenormPolicy = value

	case "source_custom_xy":
		return setXYPair(&c.SourceCustomXY, value)
	case "dest_custom_xy":
		return setXYPair(&c.DestCustomXY, value)
	case "source_custom_cct":
		return setFloat(&c.SourceCustomCCT, value)
	case "dest_custom_cct":
		return setFloat(&c.DestCustomCCT, value)

	case "gamma_mode":
		switch value {
		case "linear":
			c.GammaMode = GammaLinear
		case "srgb":
			c.GammaMode = GammaSRGB
		case "rec2084":
			c.GammaMode = GammaRec2084
		default:
			return errors.Errorf("unknown gamma_mode %q", value)
		}
	case "max_nits":
		return setFloat(&c.MaxNits, value)

	case "map_mode":
		switch value {
		case "clip":
			c.MapMode = MapClip
		case "ccc-a":
			c.MapMode = MapCCCA
		case "ccc-b":
			c.MapMode = MapCCCB
		case "ccc-c":
			c.MapMode = MapCCCC
		case "ccc-d":
			c.MapMode = MapCCCD
		case "ccc-e":
			c.MapMode = MapCCCE
		case "compress":
			c.MapMode = MapCompress
		case "expand":
			c.MapMode = MapExpand
		default:
			return errors.Errorf("unknown map_mode %q", value)
		}

	case "safe_zone":
		switch value {
		case "const-detail":
			c.SafeZone = SafeZoneConstDetail
		case "const-fidelity":
			c.SafeZone = SafeZoneConstFidelity
		default:
			return errors.Errorf("unknown safe_zone %q", value)
		}

	case "remap_factor":
		return setFloat(&c.RemapFactor, value)
	case "remap_limit":
		return setFloat(&c.RemapLimit, value)
	case "knee_factor":
		return setFloat(&c.KneeFactor, value)
	case "soft_knee":
		return setBool(&c.SoftKnee, value)

	case "spiral_carisma":
		return setBool(&c.SpiralCARISMA, value)
	case "spiral_floor":
		return setFloat(&c.SpiralFloor, value)
	case "spiral_ceiling":
		return setFloat(&c.SpiralCeiling, value)
	case "spiral_exponent":
		return setFloat(&c.SpiralExponent, value)
	case "spiral_max_scale":
		return setFloat(&c.SpiralMaxScale, value)

	case "crt_mode":
		switch value {
		case "none":
			c.CRTModeOpt = CRTNone
		case "front":
			c.CRTModeOpt = CRTFront
		case "back":
			c.CRTModeOpt = CRTBack
		default:
			return errors.Errorf("unknown crt_mode %q", value)
		}
	case "black_level":
		return setFloat(&c.BlackLevel, value)
	case "white_level":
		return setFloat(&c.WhiteLevel, value)
	case "modulator_index":
		return setInt(&c.ModulatorIndex, value)
	case "demodulator_index":
		return setInt(&c.DemodulatorIndex, value)
	case "clamp_low":
		return setFloat(&c.ClampLow, value)
	case "clamp_high":
		return setFloat(&c.ClampHigh, value)
	case "clamp_low_at_zero_light":
		return setBool(&c.ClampLowAtZeroLight, value)
	case "clamp_high_enable":
		return setBool(&c.ClampHighEnable, value)
	case "demod_autofix":
		return setBool(&c.DemodAutofix, value)
	case "hue_deg":
		return setFloat(&c.HueDeg, value)
	case "saturation":
		return setFloat(&c.Saturation, value)
	case "gamma":
		return setFloat(&c.CRTGamma, value)
	case "pedestal_crush_enable":
		return setBool(&c.PedestalCrushEnable, value)
	case "pedestal_amount":
		return setFloat(&c.PedestalAmount, value)

	case "nes_enable":
		return setBool(&c.NESEnable, value)
	case "nes_pal_mode":
		return setBool(&c.NESPALMode, value)
	case "nes_colorburst_normalize":
		return setBool(&c.NESColorburstNormalize, value)
	case "nes_skew_26a_deg":
		return setFloat(&c.NESSkew26ADeg, value)
	case "nes_luma_boost_48c_ire":
		return setFloat(&c.NESLumaBoost48CIRE, value)
	case "nes_phase_skew_per_luma_deg":
		return setFloat(&c.NESPhaseSkewPerLumaDeg, value)

	default:
		return errors.Errorf("unknown key %q", key)
	}
	return nil
}

func setXYPair(dst *[2]float64, v string) error {
	x, y, ok := strings.Cut(v, ",")
	if !ok {
		return errors.Errorf("expected x,y pair, got %q", v)
	}
	if err := setFloat(&dst[0], strings.TrimSpace(x)); err != nil {
		return err
	}
	return setFloat(&dst[1], strings.TrimSpace(y))
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrapf(err, "parsing float %q", v)
	}
	*dst = f
	return nil
}

func setInt(dst *int, v string) error {
	i, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "parsing int %q", v)
	}
	*dst = i
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Wrapf(err, "parsing bool %q", v)
	}
	*dst = b
	return nil
}
