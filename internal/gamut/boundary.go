/*
NAME
  boundary.go

DESCRIPTION
  boundary.go answers "where does the ray from the focal point through this
  color cross the gamut surface" queries against a hue slice's polyline,
  and composes the answer from a color's two surrounding hue slices into a
  full 3D JzCzhz boundary point. Segment/ray intersection against sampled
  polyline data is numerically fragile near vertices, so the query runs in
  up to three passes of increasing tolerance before giving up and returning
  the intersection nearest a sampled vertex.

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

// hueToFloorIndex splits a hue angle into the floor slice index and the
// fractional excess toward the next slice, both used to interpolate
// between two adjacent slices' sampled quantities.
func hueToFloorIndex(hue float64) (index int, excess float64) {
	raw := hue / HuePerStep
	index = int(raw)
	if index >= HueSteps {
		index = HueSteps - 1
	}
	excess = (hue - float64(index)*HuePerStep) / HuePerStep
	return index, excess
}

// boundarySegment is one line segment of the (possibly fake-point-modified)
// polyline getBoundary2D walks for a given BoundType.
type boundarySegment struct {
	a, b mathutil.Vec2
	last bool // stop walking after this segment.
}

// segments walks slice h's polyline from the white end down toward black
// (matching the order rays are expected to hit it when mapping toward black
// or horizontally), applying the BoundType's fake-point substitution:
// BoundAbove keeps only the white-to-cusp half and then continues from the
// cusp out to FakeLower; BoundBelow starts at FakeUpper, enters at the cusp,
// and continues down to black.
func (g *GBD) segments(h int, bound BoundType, visit func(seg boundarySegment) bool) {
	slice := &g.Slices[h]
	pts := slice.Points
	foundCusp := false
	for j := len(pts) - 1; j >= 1; j-- {
		seg := boundarySegment{
			a: mathutil.Vec2{X: pts[j].Chroma, Y: pts[j].Luma},
			b: mathutil.Vec2{X: pts[j-1].Chroma, Y: pts[j-1].Luma},
		}
		if bound == BoundAbove && pts[j].IsCusp {
			seg.b = slice.FakeLower
			seg.last = true
		}
		if bound == BoundBelow && !foundCusp {
			if pts[j-1].IsCusp {
				foundCusp = true
				seg.a = slice.FakeUpper
			} else {
				continue
			}
		}
		if !visit(seg) {
			return
		}
		if seg.last {
			return
		}
	}
}

// getBoundary2D finds where the ray from (0, focalLuma) through color
// (in the slice's chroma/luma plane) crosses slice h's polyline, optionally
// substituting the VP fake points for the segments that straddle the cusp.
// Three passes of decreasing strictness keep floating point noise near a
// polyline vertex from losing the intersection entirely.
func (g *GBD) getBoundary2D(color mathutil.Vec2, focalLuma float64, h int, bound BoundType) mathutil.Vec2 {
	focal := mathutil.Vec2{X: 0, Y: focalLuma}

	type hit struct {
		seg boundarySegment
		pt  mathutil.Vec2
		ok  bool
	}
	var hits []hit

	// Pass 1: strict containment test on each segment.
	var result mathutil.Vec2
	found := false
	g.segments(h, bound, func(seg boundarySegment) bool {
		pt, ok := mathutil.LineIntersection2D(focal, color, seg.a, seg.b)
		hits = append(hits, hit{seg: seg, pt: pt, ok: ok})
		if ok && mathutil.IsBetween2D(seg.a, pt, seg.b) {
			result = pt
			found = true
			return false
		}
		return true
	})
	if found {
		return result
	}

	// Pass 2: the strict test probably lost the intersection to floating
	// point error; retry the saved intersections with epsilon relaxation.
	for _, c := range hits {
		if c.ok && mathutil.SlowIsBetween2D(c.seg.a, c.pt, c.seg.b) {
			return c.pt
		}
	}

	// Pass 3: we likely missed a boundary node to the outside; take the
	// intersection that falls closest to any node.
	bestDist := math.MaxFloat64
	bestPoint := mathutil.Vec2{}
	for _, c := range hits {
		if !c.ok {
			continue
		}
		if d := c.pt.Sub(c.seg.a).Magnitude(); d < bestDist {
			bestDist, bestPoint = d, c.pt
		}
		if d := c.seg.b.Sub(c.pt).Magnitude(); d < bestDist {
			bestDist, bestPoint = d, c.pt
		}
	}
	if bestDist > mathutil.EpsilonZero && g.Log != nil {
		g.Log.Warning("gamut: boundary query fell through to nearest-node fallback",
			"gamut", g.Name, "slice", h, "bound", int(bound),
			"chroma", color.X, "luma", color.Y, "distance", bestDist)
	}
	return bestPoint
}

// warpedBoundary2D is getBoundary2D with Spiral CARISMA's warp map applied:
// the slice's own result only counts if the part of the boundary it landed
// on hasn't been warped away to another hue, and any neighboring slice whose
// rotation impinges on this one contributes its own boundary instead. The
// farthest candidate from the focal point wins.
func (g *GBD) warpedBoundary2D(color mathutil.Vec2, focalLuma float64, h int, bound BoundType) mathutil.Vec2 {
	slice := &g.Slices[h]
	focal := mathutil.Vec2{X: 0, Y: focalLuma}

	own := g.getBoundary2D(color, focalLuma, h, bound)
	farthest := own
	farthestDist := 0.0
	if !slice.RotationNeeded || (own.X > slice.SelfWarp.Floor && own.X <= slice.SelfWarp.Ceiling) {
		farthestDist = own.Sub(focal).Magnitude()
	}
	for _, r := range slice.Impinging {
		somebound := g.getBoundary2D(color, focalLuma, r.TargetSlice, bound)
		if somebound.X > r.Floor && somebound.X <= r.Ceiling {
			if d := somebound.Sub(focal).Magnitude(); d > farthestDist {
				farthestDist, farthest = d, somebound
			}
		}
	}
	return farthest
}

// getBoundary3D finds where the ray from the focal point (chroma 0, luma
// focalLuma, at color's hue) through color crosses the gamut surface: it
// queries the two sampled hue slices surrounding color's hue, then
// intersects the line between those two boundary points with the plane
// containing color's true hue.
func (g *GBD) getBoundary3D(color mathutil.Vec3, focalLuma float64, floorIdx int, bound BoundType, spiral bool) mathutil.Vec3 {
	color2D := mathutil.Vec2{X: color.Y, Y: color.X}

	query := g.getBoundary2D
	if spiral && g.Spiral.Enabled {
		query = g.warpedBoundary2D
	}

	floorBound := query(color2D, focalLuma, floorIdx, bound)
	floorHue := float64(floorIdx) * HuePerStep
	floorBound3D := mathutil.Vec3{X: floorBound.Y, Y: floorBound.X, Z: floorHue}

	if color.Z == floorHue {
		return floorBound3D
	}

	ceilIdx := floorIdx + 1
	if ceilIdx == HueSteps {
		ceilIdx = 0
	}
	ceilBound := query(color2D, focalLuma, ceilIdx, bound)
	ceilHue := float64(ceilIdx) * HuePerStep
	ceilBound3D := mathutil.Vec3{X: ceilBound.Y, Y: ceilBound.X, Z: ceilHue}

	// If both boundary points sit on the neutral axis (black or white), the
	// hue plane intersection degenerates; keep the sampled chroma/luma and
	// just substitute color's hue.
	if floorBound3D.Y < mathutil.EpsilonZero && ceilBound3D.Y < mathutil.EpsilonZero {
		return mathutil.Vec3{X: floorBound3D.X, Y: floorBound3D.Y, Z: color.Z}
	}

	cartFloor := mathutil.Depolarize(floorBound3D)
	cartCeil := mathutil.Depolarize(ceilBound3D)
	floorToCeil := cartCeil.Sub(cartFloor)

	cartColor := mathutil.Depolarize(color)
	cartBlack := mathutil.Depolarize(mathutil.Vec3{X: 0, Y: 0, Z: color.Z})
	cartGray := mathutil.Depolarize(mathutil.Vec3{X: color.X, Y: 0, Z: color.Z})
	huePlane := mathutil.NewPlane(cartBlack, cartColor, cartGray)

	tween, ok := mathutil.LinePlaneIntersection(cartFloor, floorToCeil, huePlane.Normal, huePlane.Point)
	if !ok {
		if g.Log != nil {
			g.Log.Warning("gamut: boundary line parallel to hue plane",
				"gamut", g.Name, "slice", floorIdx, "bound", int(bound), "hue", color.Z)
		}
		return floorBound3D
	}
	return mathutil.Polarize(tween)
}
