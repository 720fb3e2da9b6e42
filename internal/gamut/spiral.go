/*
NAME
  spiral.go

DESCRIPTION
  spiral.go implements Spiral CARISMA: a hue pre-warp pass that rotates a
  source gamut's primaries and secondaries, before the main gamut mapping
  runs, when rotating to a reachable hue is a smaller perceptual move than
  compressing in place. PrepareSpiralCARISMA finds the per-anchor rotations
  and spreads them across the hue slices they displace; FindHueRotation
  looks up the rotation any given input color should receive at runtime.

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

// PrepareSpiralCARISMA computes how far each of g's primaries/secondaries
// must rotate in hue to land nearer the matching anchor of dest, then
// spreads those rotations across the hue slices they displace. p supplies
// the same mapping parameters the main mapping will run with, so the
// "rotate vs. compress in place" comparison is made against the compression
// that would actually happen. Call once per (source, dest) pair before
// mapping with Spiral.Enabled set.
func (g *GBD) PrepareSpiralCARISMA(dest *GBD, maxScale float64, p MapParams) {
	g.findPrimaryRotations(dest, maxScale, p)
	g.initializeArcGeometry()
	g.warpBoundaries()
}

type anchorPair struct {
	name     string
	source   mathutil.Vec3
	dest     mathutil.Vec3
	rotation *float64
}

func (g *GBD) anchorPairs(dest *GBD) [6]anchorPair {
	return [6]anchorPair{
		{"red", g.AdjPolarRed, dest.AdjPolarRed, &g.RedRotation},
		{"green", g.AdjPolarGreen, dest.AdjPolarGreen, &g.GreenRotation},
		{"blue", g.AdjPolarBlue, dest.AdjPolarBlue, &g.BlueRotation},
		{"yellow", g.AdjPolarYellow, dest.AdjPolarYellow, &g.YellowRotation},
		{"magenta", g.AdjPolarMagenta, dest.AdjPolarMagenta, &g.MagentaRotation},
		{"cyan", g.AdjPolarCyan, dest.AdjPolarCyan, &g.CyanRotation},
	}
}

// findPrimaryRotations decides, per anchor color: zero if the source anchor
// is already representable in dest; otherwise the candidate rotation (up to
// the full hue difference toward dest's matching anchor) whose compressed
// image lands nearest the original color, or zero if no rotation beats
// compressing in place.
func (g *GBD) findPrimaryRotations(dest *GBD, maxScale float64, p MapParams) {
	// The warp map doesn't exist yet, so the comparison mapping runs
	// without the spiral pre-pass.
	p.SpiralCARISMA = false

	for _, a := range g.anchorPairs(dest) {
		*a.rotation = 0.0

		if in, _ := dest.isInBounds(a.source); in {
			continue
		}

		// The unrotated possibility can use MapColor directly.
		compressed := dest.LinearRGBToJzCzhz(MapColor(g.JzCzhzToLinearRGB(a.source), g, dest, p))
		depoSource := mathutil.Depolarize(a.source)
		noMoveDist := distance3D(mathutil.Depolarize(compressed), depoSource)

		// The rotated possibilities can't (the warp map isn't built yet),
		// but anchors lie on the source boundary and so map onto the dest
		// boundary, which getBoundary3D can find. Checking roughly twice
		// per hue step is about as much accuracy as the sampling supports.
		maxAngle := mathutil.AngleDiff(a.dest.Z, a.source.Z)
		steps := int(math.Abs(maxAngle)/HalfHuePerStep + 0.5)
		if steps < 1 {
			steps = 1
		}
		stepSize := maxAngle / float64(steps)

		bestDist := noMoveDist
		bestAngle := 0.0
		rotateBetter := false
		for j := 1; j <= steps; j++ {
			angleToTest := float64(j) * stepSize
			newHue := mathutil.AngleAdd(a.source.Z, angleToTest)
			if j == steps {
				// Make the final iteration hit dest's anchor exactly.
				newHue = a.dest.Z
				angleToTest = maxAngle
			}
			rotated := mathutil.Vec3{X: a.source.X, Y: a.source.Y, Z: newHue}

			moved := dest.compressOntoBoundary(rotated, a.dest, j == steps, p.Direction)
			if d := distance3D(mathutil.Depolarize(moved), depoSource); d < bestDist {
				bestDist = d
				bestAngle = angleToTest
				rotateBetter = true
			}
		}
		if rotateBetter {
			*a.rotation = bestAngle
			if g.Log != nil {
				g.Log.Debug("gamut: anchor rotation beats in-place compression",
					"gamut", g.Name, "anchor", a.name, "rotation", bestAngle)
			}
		}
	}

	if maxScale < 1.0 {
		g.RedRotation *= maxScale
		g.YellowRotation *= maxScale
		g.GreenRotation *= maxScale
		g.CyanRotation *= maxScale
		g.BlueRotation *= maxScale
		g.MagentaRotation *= maxScale
	}
}

// compressOntoBoundary estimates where a rotated source anchor would land
// after compression into this (destination) gamut, using the boundary
// itself as a stand-in for the full mapping.
func (g *GBD) compressOntoBoundary(rotated, destAnchor mathutil.Vec3, finalStep bool, direction MapDirection) mathutil.Vec3 {
	floorIdx, excess := hueToFloorIndex(rotated.Z)
	ceilIdx := floorIdx + 1
	if ceilIdx == HueSteps {
		ceilIdx = 0
	}
	cuspLuma := g.Slices[floorIdx].CuspLuma*(1-excess) + g.Slices[ceilIdx].CuspLuma*excess

	switch direction {
	case MapGCUSP:
		return g.getBoundary3D(rotated, cuspLuma, floorIdx, BoundNormal, false)
	case MapHLPCM:
		return g.getBoundary3D(rotated, rotated.X, floorIdx, BoundNormal, false)
	default:
		// VP family: above the cusp everything lands on the cusp itself
		// (exactly on the destination anchor for the full rotation).
		if finalStep && rotated.X >= destAnchor.X {
			return destAnchor
		}
		if rotated.X >= cuspLuma {
			cuspChroma := g.Slices[floorIdx].CuspChroma*(1-excess) + g.Slices[ceilIdx].CuspChroma*excess
			return mathutil.Vec3{X: cuspLuma, Y: cuspChroma, Z: rotated.Z}
		}
		return g.getBoundary3D(rotated, rotated.X, floorIdx, BoundNormal, false)
	}
}

func distance3D(a, b mathutil.Vec3) float64 {
	return a.Sub(b).Magnitude()
}

// initializeArcGeometry records the angular distance between each pair of
// adjacent anchors and the rotation delta across each arc, so
// FindHueMaxRotation can interpolate by arc fraction.
func (g *GBD) initializeArcGeometry() {
	g.redToYellowDist = mathutil.AngleDiff(g.AdjPolarYellow.Z, g.AdjPolarRed.Z)
	g.yellowToGreenDist = mathutil.AngleDiff(g.AdjPolarGreen.Z, g.AdjPolarYellow.Z)
	g.greenToCyanDist = mathutil.AngleDiff(g.AdjPolarCyan.Z, g.AdjPolarGreen.Z)
	g.cyanToBlueDist = mathutil.AngleDiff(g.AdjPolarBlue.Z, g.AdjPolarCyan.Z)
	g.blueToMagentaDist = mathutil.AngleDiff(g.AdjPolarMagenta.Z, g.AdjPolarBlue.Z)
	g.magentaToRedDist = mathutil.AngleDiff(g.AdjPolarRed.Z, g.AdjPolarMagenta.Z)

	g.redToYellowDiff = g.YellowRotation - g.RedRotation
	g.yellowToGreenDiff = g.GreenRotation - g.YellowRotation
	g.greenToCyanDiff = g.CyanRotation - g.GreenRotation
	g.cyanToBlueDiff = g.BlueRotation - g.CyanRotation
	g.blueToMagentaDiff = g.MagentaRotation - g.BlueRotation
	g.magentaToRedDiff = g.RedRotation - g.MagentaRotation
}

// FindHueMaxRotation returns the full (chroma-independent) rotation for a
// hue: the linear interpolation of its arc's two anchor rotations by the
// hue's angular share of the arc.
func (g *GBD) FindHueMaxRotation(hue float64) float64 {
	var thisDist, fullDist, baseAngle, fullDelta float64
	switch {
	case hue < g.AdjPolarRed.Z || hue >= g.AdjPolarMagenta.Z:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarMagenta.Z)
		fullDist = g.magentaToRedDist
		baseAngle = g.MagentaRotation
		fullDelta = g.magentaToRedDiff
	case hue < g.AdjPolarYellow.Z:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarRed.Z)
		fullDist = g.redToYellowDist
		baseAngle = g.RedRotation
		fullDelta = g.redToYellowDiff
	case hue < g.AdjPolarGreen.Z:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarYellow.Z)
		fullDist = g.yellowToGreenDist
		baseAngle = g.YellowRotation
		fullDelta = g.yellowToGreenDiff
	case hue < g.AdjPolarCyan.Z:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarGreen.Z)
		fullDist = g.greenToCyanDist
		baseAngle = g.GreenRotation
		fullDelta = g.greenToCyanDiff
	case hue < g.AdjPolarBlue.Z:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarCyan.Z)
		fullDist = g.cyanToBlueDist
		baseAngle = g.CyanRotation
		fullDelta = g.cyanToBlueDiff
	default:
		thisDist = mathutil.AngleDiff(hue, g.AdjPolarBlue.Z)
		fullDist = g.blueToMagentaDist
		baseAngle = g.BlueRotation
		fullDelta = g.blueToMagentaDiff
	}
	if fullDist == 0 {
		return baseAngle
	}
	return baseAngle + (thisDist/fullDist)*fullDelta
}

// FindHueRotation returns the Spiral CARISMA rotation (radians) to apply to
// a color at the given JzCzhz coordinates, fading from 0 at Spiral.Floor of
// the way to the slice's cusp chroma up to the full FindHueMaxRotation
// value at Spiral.Ceiling.
func (g *GBD) FindHueRotation(color mathutil.Vec3) float64 {
	if !g.Spiral.Enabled {
		return 0
	}
	floorIdx, excess := hueToFloorIndex(color.Z)
	ceilIdx := floorIdx + 1
	if ceilIdx == HueSteps {
		ceilIdx = 0
	}
	cuspChroma := g.Slices[floorIdx].CuspChroma*(1-excess) + g.Slices[ceilIdx].CuspChroma*excess
	if cuspChroma <= 0 {
		return 0
	}
	chromaPercent := color.Y / cuspChroma
	if chromaPercent > 1 {
		chromaPercent = 1
	}
	if chromaPercent <= g.Spiral.Floor {
		return 0
	}
	maxRotation := g.FindHueMaxRotation(color.Z)
	if chromaPercent >= g.Spiral.Ceiling {
		return maxRotation
	}

	var scale float64
	switch g.Spiral.ScaleMode {
	case ScaleModeCubicHermite:
		scale = cubicHermiteMap(g.Spiral.Floor, g.Spiral.Ceiling, chromaPercent)
	default:
		scale = powerMap(g.Spiral.Floor, g.Spiral.Ceiling, chromaPercent, g.Spiral.Exponent)
	}
	return maxRotation * scale
}

// warpBoundaries spreads each hue slice's rotation across the neighboring
// slices it displaces: for a slice whose max rotation covers k whole hue
// steps, the chroma domain splits into k+1 sub-ranges by inverting the
// rotation-fade curve, the first staying with the slice itself and the
// rest redirected to the slices the rotation lands them in. A fade so
// steep it jumps clean over a slice contributes nothing to it.
func (g *GBD) warpBoundaries() {
	for h := 0; h < HueSteps; h++ {
		g.Slices[h].RotationNeeded = false
		g.Slices[h].SelfWarp = warpRange{TargetSlice: h, Floor: 0, Ceiling: math.MaxFloat64}
		g.Slices[h].Impinging = nil
	}

	for h := 0; h < HueSteps; h++ {
		hue := float64(h) * HuePerStep
		maxRotation := g.FindHueMaxRotation(hue)
		fMaxRotation := math.Abs(maxRotation)
		impinged := int(fMaxRotation / HuePerStep)
		if impinged == 0 {
			continue
		}
		g.Slices[h].RotationNeeded = true
		negRotate := maxRotation < 0
		cuspChroma := g.Slices[h].CuspChroma

		floorChroma, ceilChroma := 0.0, 0.0
		for i := 0; i <= impinged; i++ {
			floorChroma = ceilChroma
			if i == impinged {
				ceilChroma = math.MaxFloat64
			} else {
				rotationPercent := (HuePerStep * float64(i+1)) / fMaxRotation
				var scaleFactor float64
				switch g.Spiral.ScaleMode {
				case ScaleModeCubicHermite:
					scaleFactor = inverseCubicHermiteMap(g.Spiral.Floor, g.Spiral.Ceiling, rotationPercent)
				default:
					scaleFactor = inversePowerMap(g.Spiral.Floor, g.Spiral.Ceiling, rotationPercent, g.Spiral.Exponent)
				}
				if scaleFactor < 0 {
					scaleFactor = 0
				} else if scaleFactor > 1 {
					scaleFactor = 1
				}
				ceilChroma = scaleFactor * cuspChroma
			}

			if i == 0 {
				g.Slices[h].SelfWarp = warpRange{TargetSlice: h, Floor: floorChroma, Ceiling: ceilChroma}
				continue
			}
			if ceilChroma == floorChroma {
				continue
			}
			target := h + i
			if negRotate {
				target = h - i
			}
			target = ((target % HueSteps) + HueSteps) % HueSteps
			g.Slices[target].Impinging = append(g.Slices[target].Impinging, warpRange{
				TargetSlice: h, Floor: floorChroma, Ceiling: ceilChroma,
			})
		}
	}
}

// powerMap maps input in [floor, ceiling] onto [0,1] by a power curve; 0
// below the floor, 1 above the ceiling.
func powerMap(floor, ceiling, input, power float64) float64 {
	floor, ceiling, input = sanitizeMapRange(floor, ceiling, input)
	if power < 0 {
		power = 0
	}
	if input <= floor {
		return 0
	}
	if input >= ceiling {
		return 1
	}
	return math.Pow((input-floor)/(ceiling-floor), power)
}

// inversePowerMap inverts powerMap: given a position on the output [0,1]
// scale, it returns the input in [floor, ceiling] that maps there.
func inversePowerMap(floor, ceiling, input, power float64) float64 {
	floor, ceiling, input = sanitizeMapRange(floor, ceiling, input)
	if power < 0 {
		power = 0
	}
	if input <= 0 {
		return floor
	}
	if input >= 1 {
		return ceiling
	}
	return (ceiling-floor)*math.Pow(input, 1.0/power) + floor
}

// cubicHermiteMap is powerMap's shape with the 01 cubic Hermite ease
// 3t^2 - 2t^3 in place of the power curve.
func cubicHermiteMap(floor, ceiling, input float64) float64 {
	floor, ceiling, input = sanitizeMapRange(floor, ceiling, input)
	if input <= floor {
		return 0
	}
	if input >= ceiling {
		return 1
	}
	t := (input - floor) / (ceiling - floor)
	return 3*t*t - 2*t*t*t
}

// inverseCubicHermiteMap inverts cubicHermiteMap. The Hermite ease is
// strictly increasing on [0,1], so bisection converges cleanly.
func inverseCubicHermiteMap(floor, ceiling, input float64) float64 {
	floor, ceiling, input = sanitizeMapRange(floor, ceiling, input)
	if input <= 0 {
		return floor
	}
	if input >= 1 {
		return ceiling
	}
	lo, hi := 0.0, 1.0
	var t float64
	for i := 0; i < 60; i++ {
		t = (lo + hi) * 0.5
		if 3*t*t-2*t*t*t < input {
			lo = t
		} else {
			hi = t
		}
	}
	return (ceiling-floor)*t + floor
}

func sanitizeMapRange(floor, ceiling, input float64) (float64, float64, float64) {
	if floor < 0 {
		floor = 0
	}
	if ceiling > 1 {
		ceiling = 1
	}
	if floor > ceiling {
		ceiling = floor
	}
	if input < 0 {
		input = 0
	}
	if input > 1 {
		input = 1
	}
	return floor, ceiling, input
}
