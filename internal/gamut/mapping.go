/*
NAME
  mapping.go

DESCRIPTION
  mapping.go is the gamut-mapping entry point: MapColor converts a linear
  RGB color in a source gamut to the nearest representable color in a
  destination gamut, along a ray chosen by one of four focal-point
  strategies (CUSP, HLPCM, VP, VPR), compressing or expanding distance
  along that ray with a hard- or soft-knee curve so in-gamut colors near
  the boundary aren't left with a visible seam.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gamut

import (
	"math"

	"github.com/crtlab/gamutthingy/internal/mathutil"
)

// MapParams bundles the tunables for a single MapColor call.
type MapParams struct {
	Direction     MapDirection
	Expand        bool
	RemapFactor   float64
	RemapLimit    float64
	SoftKnee      bool
	KneeFactor    float64
	SafeZone      SafeZoneType
	SpiralCARISMA bool

	// CCC selects the color-correction circuit MapVPRC applies to the
	// final dest-gamut RGB. Ignored for every other Direction. Matrices
	// must be non-nil when CCC != CCCNone.
	CCC      CCCMode
	Matrices *LockMap
}

// MapColor converts color (linear RGB in source's primaries) to linear RGB
// in dest's primaries, compressing or expanding it toward dest's boundary
// as configured by p. Pure black and pure white pass through unchanged.
func MapColor(color mathutil.Vec3, source, dest *GBD, p MapParams) mathutil.Vec3 {
	if (color == mathutil.Vec3{X: 0, Y: 0, Z: 0}) || (color == mathutil.Vec3{X: 1, Y: 1, Z: 1}) {
		return color
	}

	jch := source.LinearRGBToJzCzhz(color)
	if p.SpiralCARISMA && source.Spiral.Enabled {
		jch.Z = mathutil.AngleAdd(jch.Z, source.FindHueRotation(jch))
	}

	floorIdx, excess := hueToFloorIndex(jch.Z)
	ceilIdx := floorIdx + 1
	if ceilIdx == HueSteps {
		ceilIdx = 0
	}
	destCuspLuma := dest.Slices[floorIdx].CuspLuma*(1-excess) + dest.Slices[ceilIdx].CuspLuma*excess

	output := jch

	// Step 1: pick a focal luma and boundary kind per the algorithm.
	var maptoLuma float64
	var bound BoundType
	skip := false
	switch p.Direction {
	case MapGCUSP:
		maptoLuma, bound = destCuspLuma, BoundNormal
	case MapHLPCM:
		maptoLuma, bound = jch.X, BoundNormal
	case MapVP:
		if p.Expand {
			// Inverse first step: map horizontally, only below the cusp
			// (the source's, in the expand case).
			maptoLuma, bound = jch.X, BoundNormal
			sourceCuspLuma := source.Slices[floorIdx].CuspLuma*(1-excess) + source.Slices[ceilIdx].CuspLuma*excess
			if jch.X > sourceCuspLuma {
				skip = true
			}
		} else {
			// Normal first step: map toward black.
			maptoLuma, bound = 0, BoundAbove
		}
	case MapVPR, MapVPRC:
		if p.Expand {
			maptoLuma, bound = 0, BoundAbove
		} else {
			// Normal first step: map horizontally, with the extrapolated
			// bound above the cusp.
			maptoLuma, bound = jch.X, BoundBelow
		}
	}

	if !skip {
		output = remapAlongRay(output, maptoLuma, bound, source, dest, floorIdx, p)
	}

	// VP and VPR run a symmetric second step against step 1's output.
	if p.Direction == MapVP || p.Direction == MapVPR || p.Direction == MapVPRC {
		skip = false
		switch p.Direction {
		case MapVP:
			if p.Expand {
				maptoLuma, bound = 0, BoundAbove
			} else {
				maptoLuma, bound = output.X, BoundNormal
				if output.X > destCuspLuma {
					skip = true
				}
			}
		case MapVPR, MapVPRC:
			if p.Expand {
				maptoLuma, bound = output.X, BoundBelow
			} else {
				maptoLuma, bound = 0, BoundAbove
			}
		}
		if !skip {
			output = remapAlongRay(output, maptoLuma, bound, source, dest, floorIdx, p)
		}
	}

	return applyCCC(dest.JzCzhzToLinearRGB(output), p)
}

// applyCCC runs rgb through p's configured color-correction circuit, if
// any. It is a no-op for every Direction other than MapVPRC.
func applyCCC(rgb mathutil.Vec3, p MapParams) mathutil.Vec3 {
	if p.Direction != MapVPRC || p.CCC == CCCNone || p.Matrices == nil {
		return rgb
	}
	switch p.CCC {
	case CCCChunghwa:
		return p.Matrices.Chunghwa.MultVec(rgb)
	case CCCKinoshita:
		return ApplyKinoshita(p.Matrices.Kinoshita, rgb)
	default:
		return rgb
	}
}

// remapAlongRay finds where the ray from (chroma 0, maptoLuma) through jch
// crosses the source and dest boundaries, rescales jch's distance from the
// focal point accordingly, and moves jch along the ray to the new distance.
func remapAlongRay(jch mathutil.Vec3, maptoLuma float64, bound BoundType, source, dest *GBD, floorIdx int, p MapParams) mathutil.Vec3 {
	focal := mathutil.Vec2{X: 0, Y: maptoLuma}
	colorPt := mathutil.Vec2{X: jch.Y, Y: jch.X}

	sourceBoundary := source.getBoundary3D(jch, maptoLuma, floorIdx, bound, p.SpiralCARISMA)
	destBoundary := dest.getBoundary3D(jch, maptoLuma, floorIdx, bound, false)
	sourcePt := mathutil.Vec2{X: sourceBoundary.Y, Y: sourceBoundary.X}
	destPt := mathutil.Vec2{X: destBoundary.Y, Y: destBoundary.X}

	distColor := colorPt.Sub(focal).Magnitude()
	distSource := sourcePt.Sub(focal).Magnitude()
	distDest := destPt.Sub(focal).Magnitude()
	if distColor > distSource {
		// The color sits (just barely) outside where we sampled its own
		// gamut's boundary; assume sampling error and treat the color
		// itself as the boundary.
		distSource = distColor
	}

	newDist, changed := scaleDistance(distColor, distSource, distDest, p)
	if !changed {
		return jch
	}

	dir := colorPt.Sub(focal)
	mag := dir.Magnitude()
	if mag < mathutil.EpsilonZero {
		return jch
	}
	moved := focal.Add(dir.Scale(newDist / mag))
	return mathutil.Vec3{X: moved.Y, Y: moved.X, Z: jch.Z}
}

// scaleDistance implements the hard/soft-knee compression (when dest is
// closer than source along the ray, color must shrink to fit) and expansion
// (when dest is farther, color may grow to fill the headroom, if enabled)
// curve. It returns the new distance and whether any remapping applied; an
// unchanged result should be discarded to avoid accumulating floating
// point error.
func scaleDistance(distColor, distSource, distDest float64, p MapParams) (float64, bool) {
	outer := math.Max(distSource, distDest)
	inner := math.Min(distSource, distDest)
	outOfBoundsZone := outer - inner
	remapZone := outOfBoundsZone * p.RemapFactor
	kneePoint := inner - remapZone
	altKnee := inner * p.RemapLimit
	if altKnee > kneePoint || p.SafeZone == SafeZoneDestBased {
		kneePoint = altKnee
		remapZone = inner - kneePoint
	}
	kneeWidth := remapZone * p.KneeFactor
	halfKnee := kneeWidth * 0.5
	safeZoneBound := kneePoint
	if p.SoftKnee {
		safeZoneBound = kneePoint - halfKnee
	}
	if safeZoneBound < 0 {
		oops := -safeZoneBound
		safeZoneBound += oops
		kneePoint += oops
		remapZone -= oops
	}
	kneeTop := kneePoint
	if p.SoftKnee {
		kneeTop = kneePoint + halfKnee
	}
	slope := remapZone / (remapZone + outOfBoundsZone)

	if distColor <= safeZoneBound {
		return distColor, false
	}

	if distDest < distSource {
		// Soft knee per the standard dynamic-range-compression form:
		//   y = x                                     x < T - W/2
		//   y = x + ((S-1)*(x - T + W/2)^2)/2W        T - W/2 <= x <= T + W/2
		//   y = T + (x-T)*S                           x > T + W/2
		if distColor > kneeTop || !p.SoftKnee || kneeWidth == 0 {
			return kneePoint + (distColor-kneePoint)*slope, true
		}
		delta := distColor - (kneePoint - halfKnee)
		return distColor + ((slope-1)*delta*delta)/(2*kneeWidth), true
	}

	if distDest > distSource && p.Expand {
		if slope == 0 {
			return distColor, false
		}
		// The inverse function's breakpoint is the forward function's value
		// at the original breakpoint.
		kneeTopEx := kneePoint
		if p.SoftKnee {
			kneeTopEx = kneePoint + halfKnee*slope
		}
		if distColor > kneeTopEx || !p.SoftKnee || kneeWidth == 0 {
			return (distColor-kneePoint)/slope + kneePoint, true
		}
		// Inside the soft region the forward curve is the quadratic
		// y = x + a*(x - c)^2 with a = (S-1)/2W and c = T - W/2; solve it
		// for x and keep whichever root lies nearer the input (the other
		// lands far outside the knee).
		a := (slope - 1) / (2 * kneeWidth)
		c := kneePoint - halfKnee
		bq := 1 - 2*a*c
		cq := a*c*c - distColor
		disc := bq*bq - 4*a*cq
		if disc < 0 || a == 0 {
			return distColor, false
		}
		sqrtDisc := math.Sqrt(disc)
		plusCandidate := (-bq + sqrtDisc) / (2 * a)
		minusCandidate := (-bq - sqrtDisc) / (2 * a)
		if math.Abs(plusCandidate-distColor) < math.Abs(minusCandidate-distColor) {
			return plusCandidate, true
		}
		return minusCandidate, true
	}

	return distColor, false
}
