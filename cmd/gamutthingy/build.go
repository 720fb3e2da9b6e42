/*
NAME
  build.go

DESCRIPTION
  build.go translates a loaded gconfig.Config into the internal/gamut,
  internal/crt, internal/nes and pipeline types that actually run the
  pipeline: resolving gamut/whitepoint/CAT/modulator/demodulator names to
  their tables enum values, building the optional CRT front/back
  descriptors and NES simulation, and assembling the gamut.MapParams the
  configured map_mode/map_direction pair implies (including the clip mode
  and the ccc-a..e shorthand modes that bypass boundary mapping entirely).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/gconfig"
	"github.com/crtlab/gamutthingy/internal/colorspace"
	"github.com/crtlab/gamutthingy/internal/crt"
	"github.com/crtlab/gamutthingy/internal/errs"
	"github.com/crtlab/gamutthingy/internal/gamut"
	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/nes"
	"github.com/crtlab/gamutthingy/internal/tables"
	"github.com/crtlab/gamutthingy/pipeline"
)

// resolveWhitepoint returns name's preset xy, falling back to customXY if
// set, or to a CCT-derived xy (Planckian locus, no MPCD offset) if customCCT
// is nonzero. Preset name wins if given.
func resolveWhitepoint(name string, customXY [2]float64, customCCT float64) ([2]float64, error) {
	if name != "" {
		wp, ok := tables.ParseWhitepoint(name)
		if !ok {
			return [2]float64{}, &errs.ConfigError{Reason: fmt.Sprintf("unknown whitepoint %q", name)}
		}
		return tables.WhitepointXY[wp], nil
	}
	if customXY != [2]float64{} {
		return customXY, nil
	}
	if customCCT != 0 {
		xy := colorspace.XYFromCCT(customCCT, colorspace.PlanckianLocus, 0, colorspace.MPCDCIE1960)
		return [2]float64{xy.X, xy.Y}, nil
	}
	return [2]float64{colorspace.D65.X, colorspace.D65.Y}, nil
}

// buildCRT builds a crt.Descriptor from cfg's CRT fields, for use as
// either the front or back emulation stage. A negative modulator or
// demodulator index means that half of the composite chain is absent.
func buildCRT(cfg *gconfig.Config, log logging.Logger) (*crt.Descriptor, error) {
	precision := crt.PrecisionFull
	if cfg.YUVPrecision != "" {
		p, ok := crt.ParsePrecision(cfg.YUVPrecision)
		if !ok {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown yuv_precision %q", cfg.YUVPrecision)}
		}
		precision = p
	}
	renorm := crt.BlueRenormNone
	if cfg.RenormPolicy != "" {
		r, ok := crt.ParseBlueRenormPolicy(cfg.RenormPolicy)
		if !ok {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown renorm_policy %q", cfg.RenormPolicy)}
		}
		renorm = r
	}

	params := crt.Params{
		BlackLevel:          cfg.BlackLevel,
		WhiteLevel:          cfg.WhiteLevel,
		Precision:           precision,
		Renorm:              renorm,
		DemodAutofix:        cfg.DemodAutofix,
		HueOffsetDeg:        cfg.HueDeg,
		Saturation:          cfg.Saturation,
		GammaKnob:           cfg.CRTGamma,
		ClampLow:            cfg.ClampLow,
		ClampHigh:           cfg.ClampHigh,
		ClampHighEnable:     cfg.ClampHighEnable,
		ClampLowAtZeroLight: cfg.ClampLowAtZeroLight,
		PedestalCrush:       cfg.PedestalCrushEnable,
		PedestalCrushAmount: cfg.PedestalAmount,
		Log:                 log,
	}
	if cfg.ModulatorIndex >= 0 {
		if cfg.ModulatorIndex > int(tables.ModulatorCXA1219) {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("modulator_index %d out of range", cfg.ModulatorIndex)}
		}
		params.UseModulator = true
		params.Modulator = tables.Modulator(cfg.ModulatorIndex)
	}
	if cfg.DemodulatorIndex >= 0 {
		if cfg.DemodulatorIndex > int(tables.DemodulatorTDA8362) {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("demodulator_index %d out of range", cfg.DemodulatorIndex)}
		}
		params.UseDemodulator = true
		params.Demodulator = tables.Demodulator(cfg.DemodulatorIndex)
	}
	d, err := crt.NewDescriptor(params)
	if err != nil {
		return nil, &errs.InitError{Reason: "building CRT profile", Cause: err}
	}
	return d, nil
}

// buildSpiral translates cfg's spiral_* fields into a gamut.SpiralCARISMA.
func buildSpiral(cfg *gconfig.Config) (gamut.SpiralCARISMA, error) {
	s := gamut.SpiralCARISMA{
		Enabled:  cfg.SpiralCARISMA,
		Floor:    cfg.SpiralFloor,
		Ceiling:  cfg.SpiralCeiling,
		Exponent: cfg.SpiralExponent,
	}
	if cfg.SpiralScaleMode != "" {
		m, ok := gamut.ParseScaleMode(cfg.SpiralScaleMode)
		if !ok {
			return gamut.SpiralCARISMA{}, &errs.ConfigError{Reason: fmt.Sprintf("unknown spiral_scale_mode %q", cfg.SpiralScaleMode)}
		}
		s.ScaleMode = m
	}
	return s, nil
}

// buildGBD builds one side (source or dest) of the mapping from cfg. A
// non-nil crtDesc attaches the CRT to the gamut, so the boundary sampling
// tests against the emulated CRT's realizable outputs rather than the
// ideal primaries (crt_mode = front attaches to the source, back to the
// dest).
func buildGBD(name, gamutName, whitepointName string, customXY [2]float64, customCCT float64, catName string, crtDesc *crt.Descriptor, spiral gamut.SpiralCARISMA, log logging.Logger) (*gamut.GBD, error) {
	g, ok := tables.ParseGamut(gamutName)
	if !ok {
		return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown gamut %q for %s", gamutName, name)}
	}
	wp, err := resolveWhitepoint(whitepointName, customXY, customCCT)
	if err != nil {
		return nil, fmt.Errorf("%s whitepoint: %w", name, err)
	}
	cat := tables.CATBradford
	if catName != "" {
		c, ok := tables.ParseCAT(catName)
		if !ok {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown cat_kind %q", catName)}
		}
		cat = c
	}

	params := gamut.Params{
		Name:       name,
		Primaries:  tables.GamutPrimaries[g],
		Whitepoint: wp,
		CAT:        cat,
		Spiral:     spiral,
		Log:        log,
	}
	if crtDesc != nil {
		params.CRT = crtDesc
	}
	gbd, err := gamut.New(params)
	if err != nil {
		return nil, &errs.InitError{Reason: "building gamut descriptor " + name, Cause: err}
	}
	return gbd, nil
}

// cccAssignment names how a ccc-a..e map_mode resolves to a circuit and
// whether the result clips or compresses back into range.
type cccAssignment struct {
	circuit   gamut.CCCMode
	compress  bool
	vprcFirst bool
}

func cccModeFor(mode gconfig.MapMode) (cccAssignment, bool) {
	switch mode {
	case gconfig.MapCCCA:
		return cccAssignment{circuit: gamut.CCCChunghwa, compress: false}, true
	case gconfig.MapCCCB:
		return cccAssignment{circuit: gamut.CCCChunghwa, compress: true}, true
	case gconfig.MapCCCC:
		return cccAssignment{circuit: gamut.CCCKinoshita, compress: false}, true
	case gconfig.MapCCCD:
		return cccAssignment{circuit: gamut.CCCKinoshita, compress: true}, true
	case gconfig.MapCCCE:
		return cccAssignment{circuit: gamut.CCCKinoshita, compress: true, vprcFirst: true}, true
	default:
		return cccAssignment{}, false
	}
}

// buildMapParams assembles the gamut.MapParams cfg's map_mode/map_direction
// pair implies, plus a non-nil direct override for map_mode = clip (a bare
// XYZ re-encode with no boundary geometry) and for the five ccc-a..e
// map_mode values (see DESIGN.md's Open Question decision 4): ccc-a..d
// apply their circuit straight to source-gamut RGB, and ccc-e runs
// MapVPR's geometry first and then applies a compressing Kinoshita circuit
// on top.
func buildMapParams(cfg *gconfig.Config, source, dest *gamut.GBD) (gamut.MapParams, func(mathutil.Vec3) mathutil.Vec3, error) {
	p := gamut.MapParams{
		RemapFactor:   cfg.RemapFactor,
		RemapLimit:    cfg.RemapLimit,
		KneeFactor:    cfg.KneeFactor,
		SoftKnee:      cfg.SoftKnee,
		Expand:        cfg.MapMode == gconfig.MapExpand,
		SpiralCARISMA: cfg.SpiralCARISMA,
	}
	switch cfg.SafeZone {
	case gconfig.SafeZoneConstFidelity:
		p.SafeZone = gamut.SafeZoneDestBased
	default:
		p.SafeZone = gamut.SafeZoneDeltaBased
	}

	if cfg.MapMode == gconfig.MapClip {
		direct := func(rgb mathutil.Vec3) mathutil.Vec3 {
			return dest.XYZToLinearRGB(source.LinearRGBToXYZ(rgb))
		}
		return p, direct, nil
	}

	if assignment, ok := cccModeFor(cfg.MapMode); ok {
		matrices := gamut.PrepareLockMap(source, dest)
		if !assignment.vprcFirst {
			direct := func(rgb mathutil.Vec3) mathutil.Vec3 {
				return gamut.ApplyDirectCCC(rgb, assignment.circuit, matrices, assignment.compress)
			}
			return p, direct, nil
		}
		geometry := p
		geometry.Direction = gamut.MapVPR
		direct := func(rgb mathutil.Vec3) mathutil.Vec3 {
			mapped := gamut.MapColor(rgb, source, dest, geometry)
			return gamut.ApplyDirectCCC(mapped, assignment.circuit, matrices, assignment.compress)
		}
		return p, direct, nil
	}

	if cfg.MapDirection != "" {
		d, ok := gamut.ParseMapDirection(cfg.MapDirection)
		if !ok {
			return gamut.MapParams{}, nil, &errs.ConfigError{Reason: fmt.Sprintf("unknown map_direction %q", cfg.MapDirection)}
		}
		p.Direction = d
	} else {
		p.Direction = gamut.MapGCUSP
	}
	if p.Direction == gamut.MapVPRC {
		p.CCC = gamut.CCCKinoshita
		p.Matrices = gamut.PrepareLockMap(source, dest)
	}
	return p, nil, nil
}

// buildNES builds an nes.Simulation from cfg's nes_* fields. ok is false
// when nes_enable is off.
func buildNES(cfg *gconfig.Config) (sim nes.Simulation, ok bool, err error) {
	if !cfg.NESEnable {
		return nes.Simulation{}, false, nil
	}
	sim, err = nes.New(nes.Params{
		PALMode:                 cfg.NESPALMode,
		ColorburstAmpCorrection: cfg.NESColorburstNormalize,
		PhaseSkew26A:            cfg.NESSkew26ADeg,
		LumaBoost48C:            cfg.NESLumaBoost48CIRE,
		PhaseSkewPerLumaStep:    cfg.NESPhaseSkewPerLumaDeg,
	})
	if err != nil {
		return nes.Simulation{}, false, err
	}
	return sim, true, nil
}

// buildGammaCodec picks the gamma codec cfg.GammaMode names.
func buildGammaCodec(cfg *gconfig.Config) pipeline.GammaCodec {
	switch cfg.GammaMode {
	case gconfig.GammaSRGB:
		return pipeline.SRGBCodec()
	case gconfig.GammaRec2084:
		return pipeline.Rec2084Codec(cfg.MaxNits)
	default:
		return pipeline.LinearCodec()
	}
}
