/*
NAME
  gamut.go

DESCRIPTION
  gamut.go builds a Gamut Boundary Descriptor (GBD): a hue-sliced polyline
  approximation of a color gamut's surface in the perceptually uniform
  JzCzhz space, sampled densely enough to drive the gamut-mapping
  algorithms in mapping.go. Each of HueSteps hue slices holds an ordered
  polyline from black up one side of the gamut's surface, through its
  cusp (the point of maximum chroma), and back down to white, plus the
  two "fake" points the VP/VPR algorithms extrapolate toward when they
  need a focal point beyond the polyline itself.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gamut builds gamut boundary descriptors and maps colors between
// them, generalizing the geometric gamut-compression approach of ACES-style
// tools to arbitrary RGB primaries, CRT emulation and Spiral CARISMA hue
// warping.
package gamut

import (
	"math"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/internal/colorspace"
	"github.com/crtlab/gamutthingy/internal/mathutil"
)

// Sampling resolution. HueSteps slices the hue circle into 0.2-degree
// wedges; the luma/chroma step counts control the coarse sampling grid and
// its fine refinement within each wedge.
const (
	HueSteps        = 1800
	LumaSteps       = 20
	FineLumaSteps   = 50
	ChromaSteps     = 50
	FineChromaSteps = 20

	HuePerStep     = 2.0 * math.Pi / HueSteps
	HalfHuePerStep = HuePerStep / 2.0
)

// BoundType selects which portion of a hue slice's polyline getBoundary2D
// walks, and which fake extrapolation point substitutes for the rest.
type BoundType int

const (
	// BoundNormal walks the whole polyline unmodified.
	BoundNormal BoundType = iota
	// BoundAbove walks only the white-to-cusp half, then continues from the
	// cusp out to the lower fake point; used when mapping toward black.
	BoundAbove
	// BoundBelow walks from the upper fake point in through the cusp, then
	// down the black-to-cusp half.
	BoundBelow
)

// MapDirection selects the gamut-mapping algorithm MapColor uses to pick a
// focal point and boundary kind.
type MapDirection int

const (
	MapGCUSP MapDirection = iota
	MapHLPCM
	MapVP
	MapVPR
	// MapVPRC is MapVPR's boundary geometry followed by a color-correction
	// circuit (see MapParams.CCC) applied to the final dest-gamut RGB, for
	// emulating a CRT jungle chip's primary-correction stage on top of
	// perceptual gamut compression rather than instead of it.
	MapVPRC
)

// SafeZoneType selects whether the compression/expansion knee is derived
// from the difference between the two gamuts (DeltaBased, Su/Tao/Kim's
// const-detail approach) or always relative to the destination gamut alone
// (DestBased, the traditional const-fidelity approach).
type SafeZoneType int

const (
	SafeZoneDeltaBased SafeZoneType = iota
	SafeZoneDestBased
)

// boundaryPoint is one vertex of a hue slice's polyline, in the (chroma,
// luma) half-plane of that slice.
type boundaryPoint struct {
	Chroma float64
	Luma   float64
	Angle  float64 // clockwise angle from the neutral-gray-to-white reference, used only while sorting.
	IsCusp bool
}

// warpRange is a sub-range of a hue slice's chroma domain that Spiral
// CARISMA warps toward a particular hue rotation target: either itself
// (the self-warp range nearest the neutral axis) or an impinging neighbor
// slice whose primary rotation reaches this far.
type warpRange struct {
	TargetSlice int
	Floor       float64
	Ceiling     float64
}

// hueSlice is one of HueSteps wedges of the gamut's hue circle.
type hueSlice struct {
	Points []boundaryPoint

	CuspChroma float64
	CuspLuma   float64

	FakeLower mathutil.Vec2 // VP's lower (high-chroma) extrapolation point.
	FakeUpper mathutil.Vec2 // VP's upper (high-luma) extrapolation point.

	RotationNeeded bool
	SelfWarp       warpRange
	Impinging      []warpRange
}

// SpiralCARISMA holds the tunables for the Spiral CARISMA hue pre-warp
// pass: primaries/secondaries that would otherwise fall outside the
// destination gamut are rotated in hue before mapping, fading in between
// Floor and Ceiling of the way from the neutral axis to the slice's cusp
// chroma.
type SpiralCARISMA struct {
	Enabled   bool
	Floor     float64
	Ceiling   float64
	Exponent  float64
	ScaleMode ScaleMode
}

// ScaleMode selects the curve Spiral CARISMA uses to fade a hue rotation in
// across a slice's chroma domain.
type ScaleMode int

const (
	ScaleModeExponential ScaleMode = iota
	ScaleModeCubicHermite
)

// GBD is a gamut boundary descriptor: the sampled surface of one set of RGB
// primaries in JzCzhz, plus the matrices needed to convert to/from it and
// the state Spiral CARISMA and the color-correction circuits need.
type GBD struct {
	Name string

	NPM colorspace.NPM

	RedXYZ, GreenXYZ, BlueXYZ, WhiteXYZ mathutil.Vec3

	MaxLuma   float64
	MaxChroma float64

	Slices [HueSteps]hueSlice

	// Polar JzCzhz primary/secondary points. The "Adj" variants are
	// substituted with CRT-emulated primaries when a CRT is attached to
	// this gamut; otherwise they equal the plain points.
	PolarRed, PolarGreen, PolarBlue               mathutil.Vec3
	PolarYellow, PolarMagenta, PolarCyan          mathutil.Vec3
	AdjPolarRed, AdjPolarGreen, AdjPolarBlue      mathutil.Vec3
	AdjPolarYellow, AdjPolarMagenta, AdjPolarCyan mathutil.Vec3

	// CRT, when non-nil, redefines what "in bounds" means for this gamut:
	// the boundary is sampled against the set of outputs the emulated CRT
	// could produce from valid gamma-space inputs, not the ideal primaries.
	CRT CRTEmulator

	Spiral SpiralCARISMA

	// Per-anchor Spiral CARISMA rotations and the precomputed arc geometry
	// between adjacent anchors, set by PrepareSpiralCARISMA when this gamut
	// is the source of a mapping; zero otherwise.
	RedRotation, GreenRotation, BlueRotation      float64
	YellowRotation, MagentaRotation, CyanRotation float64

	redToYellowDist, yellowToGreenDist, greenToCyanDist    float64
	cyanToBlueDist, blueToMagentaDist, magentaToRedDist    float64
	redToYellowDiff, yellowToGreenDiff, greenToCyanDiff    float64
	cyanToBlueDiff, blueToMagentaDiff, magentaToRedDiff    float64

	Log logging.Logger
}

// CRTEmulator is the narrow interface gamut needs from internal/crt.
// GammaToLinear is the forward emulation (the light a CRT would emit for a
// gamma-space input); LinearToGamma is its inverse (the gamma-space input
// that would produce a given light output), with the pedestal uncrush
// optionally suppressed so that boundary sampling doesn't treat the bottom
// of the crushed range as unreachable.
type CRTEmulator interface {
	GammaToLinear(rgb mathutil.Vec3) mathutil.Vec3
	LinearToGamma(rgb mathutil.Vec3, uncrush bool) mathutil.Vec3
}

// LinearRGBToXYZ converts linear RGB in this gamut's primaries to XYZ.
func (g *GBD) LinearRGBToXYZ(rgb mathutil.Vec3) mathutil.Vec3 {
	return g.NPM.RGBToXYZ(rgb)
}

// XYZToLinearRGB converts XYZ to linear RGB in this gamut's primaries.
func (g *GBD) XYZToLinearRGB(xyz mathutil.Vec3) mathutil.Vec3 {
	return g.NPM.XYZToRGB(xyz)
}

// LinearRGBToJzCzhz converts linear RGB in this gamut's primaries to polar
// JzCzhz.
func (g *GBD) LinearRGBToJzCzhz(rgb mathutil.Vec3) mathutil.Vec3 {
	xyz := g.LinearRGBToXYZ(rgb)
	jab := colorspace.XYZToJzazbz(xyz)
	return mathutil.Polarize(jab)
}

// JzCzhzToLinearRGB converts polar JzCzhz back to linear RGB in this
// gamut's primaries.
func (g *GBD) JzCzhzToLinearRGB(jch mathutil.Vec3) mathutil.Vec3 {
	jab := mathutil.Depolarize(jch)
	xyz := colorspace.JzazbzToXYZ(jab)
	return g.XYZToLinearRGB(xyz)
}
