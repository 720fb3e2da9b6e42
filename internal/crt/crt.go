/*
NAME
  crt.go

DESCRIPTION
  crt.go assembles a CRT emulation profile out of the pieces in bt1886.go
  and ntsc.go: a BT.1886 EOTF for the tube's actual black/white levels, the
  composed modulator/demodulator R'G'B' matrix for the composite signal
  chain in front of it, the saturation/hue/gamma trims a technician (or a
  viewer with a remote) would have dialed in, pedestal crush for content
  mastered with the 7.5 IRE setup baked in, and the R'G'B' clamp a real
  chassis imposes before the electron guns. The forward direction
  (GammaToLinear) answers "what light does this input actually produce";
  the inverse (LinearToGamma) answers "what input would produce this
  light", which is what gamut boundary sampling needs.

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

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

// DefaultClampLow is the default low clamp for the post-matrix R'G'B'
// signal: the gap between reference black and blanking level on US NTSC
// (7.5/92.5). Going below that caused trouble on real CRTs, and inputs
// much below it eventually NaN the Jzazbz PQ function.
const DefaultClampLow = -0.075

// DefaultPedestalAmount is the standard NTSC setup pedestal.
const DefaultPedestalAmount = 0.075

// Params configures a Descriptor.
type Params struct {
	BlackLevel float64 // cd/m^2 / 100 at black input; sane value 0.001.
	WhiteLevel float64 // cd/m^2 / 100 at white input; sane value 1.0.

	Precision Precision

	// UseModulator/UseDemodulator select which halves of the composite
	// chain are emulated; the overall matrix is the product of whichever
	// are present.
	UseModulator   bool
	Modulator      tables.Modulator
	UseDemodulator bool
	Demodulator    tables.Demodulator

	Renorm       BlueRenormPolicy
	DemodAutofix bool

	HueOffsetDeg float64 // analog hue knob, degrees.
	Saturation   float64 // analog saturation knob; 0 is treated as 1.
	GammaKnob    float64 // factory gamma trim, x^GammaKnob; 0 is treated as 1.

	ClampLow            float64 // low clamp level; 0 is treated as DefaultClampLow.
	ClampHigh           float64 // high clamp level, used only when ClampHighEnable.
	ClampHighEnable     bool
	ClampLowAtZeroLight bool // lower the low clamp to the input producing zero light, if lower.

	PedestalCrush       bool
	PedestalCrushAmount float64 // 0 is treated as DefaultPedestalAmount.

	Log logging.Logger
}

// Descriptor is a fully built CRT emulation profile, immutable after
// NewDescriptor.
type Descriptor struct {
	eotf BT1886

	overall        mathutil.Matrix3
	inverseOverall mathutil.Matrix3

	gammaKnob float64

	clampLow        float64
	clampHigh       float64
	clampHighEnable bool

	crushEnabled bool
	crushAmount  float64
}

// NewDescriptor builds a Descriptor from p.
func NewDescriptor(p Params) (*Descriptor, error) {
	gammaKnob := p.GammaKnob
	if gammaKnob == 0 {
		gammaKnob = 1.0
	}
	saturation := p.Saturation
	if saturation == 0 {
		saturation = 1.0
	}
	clampLow := p.ClampLow
	if clampLow == 0 {
		clampLow = DefaultClampLow
	}
	crushAmount := p.PedestalCrushAmount
	if crushAmount == 0 {
		crushAmount = DefaultPedestalAmount
	}

	d := &Descriptor{
		eotf:            NewBT1886(p.BlackLevel, p.WhiteLevel, p.Log),
		gammaKnob:       gammaKnob,
		clampLow:        clampLow,
		clampHigh:       p.ClampHigh,
		clampHighEnable: p.ClampHighEnable,
		crushEnabled:    p.PedestalCrush,
		crushAmount:     crushAmount,
	}

	if p.ClampLowAtZeroLight {
		zeroLight := d.eotf.B
		if gammaKnob != 1.0 {
			zeroLight = math.Pow(zeroLight, 1.0/gammaKnob)
		}
		zeroLight *= -1.0
		if zeroLight < d.clampLow {
			d.clampLow = zeroLight
			d.eotf.ZeroLightClamp = true
			if p.Log != nil {
				p.Log.Info("crt: lowered R'G'B' low clamp to the zero-light input", "clamp", d.clampLow)
			}
		}
	}

	overall := mathutil.Identity3()
	haveMatrix := false
	if p.UseModulator {
		mod, err := BuildModulatorMatrix(tables.ModulatorInfo[p.Modulator], p.Precision)
		if err != nil {
			return nil, errors.Wrap(err, "crt: building modulator matrix")
		}
		overall = mod
		haveMatrix = true
	}
	if p.UseDemodulator {
		demod, err := BuildDemodulatorMatrix(tables.DemodulatorInfo[p.Demodulator], DemodulatorOptions{
			Autofix:      p.DemodAutofix,
			HueOffsetDeg: p.HueOffsetDeg,
			Renorm:       p.Renorm,
			Dummy:        p.Demodulator == tables.DemodulatorDummy,
		}, p.Precision)
		if err != nil {
			return nil, errors.Wrap(err, "crt: building demodulator matrix")
		}
		if haveMatrix {
			overall = demod.Mult(overall)
		} else {
			overall = demod
		}
	}

	if saturation != 1.0 {
		// Roll "convert to Y'PbPr, scale Pb and Pr, convert back" into one
		// matrix applied to the chroma before it's demodulated. (The set
		// might instead demodulate first and scale R-Y/B-Y; no measured
		// data settles which, so this follows the encoder-side reading.)
		wr, wg, wb, err := WhiteBalance1953(p.Precision)
		if err != nil {
			return nil, errors.Wrap(err, "crt: building saturation matrix")
		}
		delta := saturation - 1.0
		satMatrix := mathutil.Matrix3{
			{1.0 + (1.0-wr)*delta, -wg * delta, -wb * delta},
			{-wr * delta, 1.0 + (1.0-wg)*delta, -wb * delta},
			{-wr * delta, -wg * delta, 1.0 + (1.0-wb)*delta},
		}
		overall = overall.Mult(satMatrix)
	}

	d.overall = overall
	inverse, ok := overall.Invert()
	if !ok {
		return nil, errors.New("crt: overall correction matrix is not invertible")
	}
	d.inverseOverall = inverse

	return d, nil
}

// EOTF exposes the fitted BT.1886 instance.
func (d *Descriptor) EOTF() BT1886 { return d.eotf }

// GammaToLinear turns a gamma-space R'G'B' input into the linear light this
// CRT profile would emit: pedestal crush, the overall correction matrix,
// the chassis clamp, the gamma trim, then the BT.1886 EOTF.
func (d *Descriptor) GammaToLinear(rgb mathutil.Vec3) mathutil.Vec3 {
	if d.crushEnabled {
		rgb = d.crushBlack(rgb)
	}
	out := d.overall.MultVec(rgb)
	out = d.applyClamp(out)
	out = mathutil.Vec3{
		X: d.applyGammaKnob(out.X),
		Y: d.applyGammaKnob(out.Y),
		Z: d.applyGammaKnob(out.Z),
	}
	return mathutil.Vec3{
		X: d.eotf.ToLinear(out.X),
		Y: d.eotf.ToLinear(out.Y),
		Z: d.eotf.ToLinear(out.Z),
	}
}

// LinearToGamma is GammaToLinear's inverse: the gamma-space input that
// would drive this CRT to the given linear light. uncrush controls whether
// the pedestal is restored; boundary sampling passes false so the bottom
// of the crushed range isn't treated as unreachable input space.
func (d *Descriptor) LinearToGamma(rgb mathutil.Vec3, uncrush bool) mathutil.Vec3 {
	out := mathutil.Vec3{
		X: d.eotf.ToGamma(rgb.X),
		Y: d.eotf.ToGamma(rgb.Y),
		Z: d.eotf.ToGamma(rgb.Z),
	}
	out = mathutil.Vec3{
		X: d.undoGammaKnob(out.X),
		Y: d.undoGammaKnob(out.Y),
		Z: d.undoGammaKnob(out.Z),
	}
	out = d.inverseOverall.MultVec(out)
	if d.crushEnabled && uncrush {
		out = d.uncrushBlack(out)
	}
	return out
}

// crushBlack removes the setup pedestal: content mastered with the 7.5 IRE
// setup baked in loses its bottom 7.5% to the blanking level.
func (d *Descriptor) crushBlack(in mathutil.Vec3) mathutil.Vec3 {
	scale := 1.0 - d.crushAmount
	crush := func(c float64) float64 {
		c = (c - d.crushAmount) / scale
		if c < 0 {
			return 0
		}
		return c
	}
	return mathutil.Vec3{X: crush(in.X), Y: crush(in.Y), Z: crush(in.Z)}
}

// uncrushBlack restores the setup pedestal.
func (d *Descriptor) uncrushBlack(in mathutil.Vec3) mathutil.Vec3 {
	scale := 1.0 - d.crushAmount
	uncrush := func(c float64) float64 { return c*scale + d.crushAmount }
	return mathutil.Vec3{X: uncrush(in.X), Y: uncrush(in.Y), Z: uncrush(in.Z)}
}

// applyGammaKnob raises v to the gammaKnob power, odd-symmetrically for
// negative v.
func (d *Descriptor) applyGammaKnob(v float64) float64 {
	if d.gammaKnob == 1.0 {
		return v
	}
	return oddSymmetric(v, func(x float64) float64 { return math.Pow(x, d.gammaKnob) })
}

// undoGammaKnob inverts applyGammaKnob.
func (d *Descriptor) undoGammaKnob(v float64) float64 {
	if d.gammaKnob == 1.0 {
		return v
	}
	return oddSymmetric(v, func(x float64) float64 { return math.Pow(x, 1.0/d.gammaKnob) })
}

// oddSymmetric applies f to the magnitude of x and restores x's sign, the
// same negative-excursion handling the EOTF uses.
func oddSymmetric(x float64, f func(float64) float64) float64 {
	if x < 0 {
		return -f(-x)
	}
	return f(x)
}

// applyClamp enforces the chassis signal bounds: the low clamp always (at
// some point there are just zero volts driving the gun), the high clamp
// only when enabled (gamut compression can handle super-white excursions,
// but clamping them is probably truer to what CRTs did).
func (d *Descriptor) applyClamp(v mathutil.Vec3) mathutil.Vec3 {
	clampOne := func(x float64) float64 {
		if d.clampHighEnable && x > d.clampHigh {
			x = d.clampHigh
		}
		if x < d.clampLow {
			x = d.clampLow
		}
		return x
	}
	return mathutil.Vec3{X: clampOne(v.X), Y: clampOne(v.Y), Z: clampOne(v.Z)}
}
