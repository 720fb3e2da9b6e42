/*
NAME
  lockmap.go

DESCRIPTION
  lockmap.go implements the color-correction circuits (CCCs) real CRT
  "jungle" chips used to pre-distort R'G'B' so that driving a phosphor set
  different from the broadcast spec primaries still reproduced the
  intended colors for at least red, green, blue, and white: the 13-matrix
  decision tree from Kinoshita's patent (selected per input RGB ordering),
  and Chunghwa's single always-on matrix. Both find their primaries by
  "hillclimbing" to the input value that drives exactly one RGB channel to
  1.0 at a given chromaticity; Kinoshita's secondary points then come from
  the patent's line-intersection construction on top of those primaries.

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

// CCCMode selects which color-correction circuit LockMap applies.
type CCCMode int

const (
	// CCCNone applies no correction.
	CCCNone CCCMode = iota
	// CCCChunghwa applies Chunghwa's single always-on matrix.
	CCCChunghwa
	// CCCKinoshita applies the Kinoshita 13-matrix decision tree.
	CCCKinoshita
)

// PrepareLockMap builds both color-correction circuits for the (source,
// dest) GBD pair, so MapParams.Matrices can be set once per mapping session
// regardless of which circuit CCCMode ultimately selects.
func PrepareLockMap(source, dest *GBD) *LockMap {
	return &LockMap{
		Chunghwa:  PrepareChunghwa(source, dest),
		Kinoshita: PrepareKinoshita(source, dest),
	}
}

// ApplyDirectCCC runs rgb (linear, in source's primaries) through the
// named circuit with no boundary-mapping geometry at all, then brings the
// result back into [0,1] either by clipping each channel independently or
// by uniformly scaling all three down by the largest channel (preserving
// hue and saturation ratios, at the cost of an overall dimming of any
// pixel that needed it). circuit == CCCNone returns rgb unchanged.
func ApplyDirectCCC(rgb mathutil.Vec3, circuit CCCMode, matrices *LockMap, compress bool) mathutil.Vec3 {
	var corrected mathutil.Vec3
	switch circuit {
	case CCCChunghwa:
		corrected = matrices.Chunghwa.MultVec(rgb)
	case CCCKinoshita:
		corrected = ApplyKinoshita(matrices.Kinoshita, rgb)
	default:
		return rgb
	}

	if compress {
		max := corrected.X
		if corrected.Y > max {
			max = corrected.Y
		}
		if corrected.Z > max {
			max = corrected.Z
		}
		if max > 1 {
			corrected = corrected.Scale(1 / max)
		}
	}
	clampOne := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return mathutil.Vec3{X: clampOne(corrected.X), Y: clampOne(corrected.Y), Z: clampOne(corrected.Z)}
}

type lockColor int

const (
	lockRed lockColor = iota
	lockGreen
	lockBlue
)

// LockMap holds the matrices for both supported color-correction circuits,
// built by PrepareLockMap(source, dest) for a given (broadcast-spec
// source, phosphor dest) pair.
type LockMap struct {
	Chunghwa  mathutil.Matrix3
	Kinoshita [13]mathutil.Matrix3
}

// xyYHillclimb binary searches for the Y (luminance) at chromaticity (x,y)
// such that the linear RGB it converts to (via source's inverse NPM) has
// lock channel pinned at exactly 1.0, returning that RGB triple (with the
// lock channel forced to exactly 1.0) and the Y it found.
func xyYHillclimb(source *GBD, x, y float64, lock lockColor) (rgb mathutil.Vec3, Y float64) {
	low, high := 0.0, 1.0
	var guess mathutil.Vec3
	for step := 0; step < 60; step++ {
		Y = (low + high) * 0.5
		xyz := mathutil.XyYToXYZ(mathutil.Vec3{X: x, Y: y, Z: Y})
		guess = source.NPM.XYZToRGB(xyz)

		var check float64
		switch lock {
		case lockRed:
			check = guess.X
		case lockGreen:
			check = guess.Y
		case lockBlue:
			check = guess.Z
		}
		offBy := math.Abs(1.0 - check)
		if offBy < mathutil.EpsilonZero {
			break
		}
		if check > 1.0 {
			high = Y
		} else {
			low = Y
		}
	}
	switch lock {
	case lockRed:
		guess.X = 1.0
	case lockGreen:
		guess.Y = 1.0
	case lockBlue:
		guess.Z = 1.0
	}
	return guess, Y
}

func xyzToXyY(xyz mathutil.Vec3) mathutil.Vec3 {
	sum := xyz.X + xyz.Y + xyz.Z
	if sum == 0 {
		return mathutil.Vec3{}
	}
	return mathutil.Vec3{X: xyz.X / sum, Y: xyz.Y / sum, Z: xyz.Y}
}

// PrepareChunghwa builds the Chunghwa matrix that corrects source (the
// broadcast-spec primaries content was mastered against) for display on
// dest's actual phosphor primaries: each column is the linear RGB that,
// driven through source's own primaries, reproduces dest's R, G or B
// chromaticity with unit intensity in the matching channel.
func PrepareChunghwa(source, dest *GBD) mathutil.Matrix3 {
	destRedXyY := xyzToXyY(dest.RedXYZ)
	destGreenXyY := xyzToXyY(dest.GreenXYZ)
	destBlueXyY := xyzToXyY(dest.BlueXYZ)

	redW, _ := xyYHillclimb(source, destRedXyY.X, destRedXyY.Y, lockRed)
	greenW, _ := xyYHillclimb(source, destGreenXyY.X, destGreenXyY.Y, lockGreen)
	blueW, _ := xyYHillclimb(source, destBlueXyY.X, destBlueXyY.Y, lockBlue)

	return mathutil.Matrix3{
		{redW.X, greenW.X, blueW.X},
		{redW.Y, greenW.Y, blueW.Y},
		{redW.Z, greenW.Z, blueW.Z},
	}
}

// PrepareKinoshita builds the 13 Kinoshita correction matrices for mapping
// source (broadcast-spec primaries) onto dest (actual phosphor primaries),
// following Kinoshita's 1981 patent (US4386363) geometry: it locates where
// each of dest's secondary colors (magenta/yellow/cyan) would intersect the
// line from white through source's matching secondary, in proportion to
// distance between dest's neighboring primaries, then derives 13 distinct
// correction matrices selected at runtime by the relative ordering of the
// input RGB channels.
func PrepareKinoshita(source, dest *GBD) [13]mathutil.Matrix3 {
	var out [13]mathutil.Matrix3

	Rphos := mathutil.Vec2{X: xyzToXyY(dest.RedXYZ).X, Y: xyzToXyY(dest.RedXYZ).Y}
	Gphos := mathutil.Vec2{X: xyzToXyY(dest.GreenXYZ).X, Y: xyzToXyY(dest.GreenXYZ).Y}
	Bphos := mathutil.Vec2{X: xyzToXyY(dest.BlueXYZ).X, Y: xyzToXyY(dest.BlueXYZ).Y}

	LWr := dest.NPM.Matrix[1][0]
	LWg := dest.NPM.Matrix[1][1]
	LWb := dest.NPM.Matrix[1][2]

	_, LRr := xyYHillclimb(source, Rphos.X, Rphos.Y, lockRed)
	_, LGg := xyYHillclimb(source, Gphos.X, Gphos.Y, lockGreen)
	_, LBb := xyYHillclimb(source, Bphos.X, Bphos.Y, lockBlue)

	sum := LRr + LGg + LBb
	LRrNorm, LGgNorm, LBbNorm := LRr/sum, LGg/sum, LBb/sum

	secondaryXyY := func(npm mathutil.Matrix3, rgb mathutil.Vec3) mathutil.Vec2 {
		xyz := mathutil.Matrix3(npm).MultVec(rgb)
		xyY := xyzToXyY(xyz)
		return mathutil.Vec2{X: xyY.X, Y: xyY.Y}
	}
	Mspec := secondaryXyY(source.NPM.Matrix, mathutil.Vec3{X: 1, Z: 1})
	Mphos := secondaryXyY(dest.NPM.Matrix, mathutil.Vec3{X: 1, Z: 1})
	Yspec := secondaryXyY(source.NPM.Matrix, mathutil.Vec3{X: 1, Y: 1})
	Yphos := secondaryXyY(dest.NPM.Matrix, mathutil.Vec3{X: 1, Y: 1})
	Cspec := secondaryXyY(source.NPM.Matrix, mathutil.Vec3{Y: 1, Z: 1})
	Cphos := secondaryXyY(dest.NPM.Matrix, mathutil.Vec3{Y: 1, Z: 1})

	W := mathutil.Vec2{X: xyzToXyY(dest.WhiteXYZ).X, Y: xyzToXyY(dest.WhiteXYZ).Y}

	Mprime, okM := mathutil.LineIntersection2D(W, Mspec, Bphos, Rphos)
	Yprime, okY := mathutil.LineIntersection2D(W, Yspec, Rphos, Gphos)
	Cprime, okC := mathutil.LineIntersection2D(W, Cspec, Gphos, Bphos)
	if !okM || !okY || !okC {
		// Parallel construction lines: fall back to the identity, same as
		// the reference implementation's documented failure mode.
		for i := range out {
			out[i] = mathutil.Identity3()
		}
		return out
	}

	LMb := (Mprime.Sub(Rphos).Magnitude() / Mphos.Sub(Rphos).Magnitude()) * LWb
	LMr := (Mprime.Sub(Bphos).Magnitude() / Mphos.Sub(Bphos).Magnitude()) * LWr
	LYg := (Yprime.Sub(Rphos).Magnitude() / Yphos.Sub(Rphos).Magnitude()) * LWg
	LYr := (Yprime.Sub(Gphos).Magnitude() / Yphos.Sub(Gphos).Magnitude()) * LWr
	LCg := (Cprime.Sub(Bphos).Magnitude() / Cphos.Sub(Bphos).Magnitude()) * LWg
	LCb := (Cprime.Sub(Gphos).Magnitude() / Cphos.Sub(Gphos).Magnitude()) * LWb

	primarySum := LRrNorm + LBbNorm
	secondarySum := LMr + LMb
	LMrNorm := (LMr / secondarySum) * primarySum
	LMbNorm := (LMb / secondarySum) * primarySum

	primarySum = LRrNorm + LGgNorm
	secondarySum = LYr + LYg
	LYrNorm := (LYr / secondarySum) * primarySum
	LYgNorm := (LYg / secondarySum) * primarySum

	primarySum = LGgNorm + LBbNorm
	secondarySum = LCg + LCb
	LCgNorm := (LCg / secondarySum) * primarySum
	LCbNorm := (LCb / secondarySum) * primarySum

	rMax := max4(LWr, LRrNorm, LMrNorm, LYrNorm)
	Rw, Rs, Ry, Rm := LWr/rMax, LRrNorm/rMax, LYrNorm/rMax, LMrNorm/rMax

	gMax := max4(LWg, LGgNorm, LYgNorm, LCgNorm)
	Gw, Gs, Gy, Gc := LWg/gMax, LGgNorm/gMax, LYgNorm/gMax, LCgNorm/gMax

	bMax := max4(LWb, LBbNorm, LMbNorm, LCbNorm)
	Bw, Bs, Bm, Bc := LWb/bMax, LBbNorm/bMax, LMbNorm/bMax, LCbNorm/bMax

	out[0] = mathutil.Matrix3{{Rs, Ry - Rs, Rw - Ry}, {0, Gy, Gw - Gy}, {0, 0, Bw}}                 // S1
	out[1] = mathutil.Matrix3{{Ry, 0, Rw - Ry}, {Gy - Gs, Gs, Gw - Gy}, {0, 0, Bw}}                 // S2
	out[2] = mathutil.Matrix3{{Rw, 0, 0}, {Gw - Gc, Gs, Gc - Gs}, {Bw - Bc, 0, Bc}}                 // S3
	out[3] = mathutil.Matrix3{{Rw, 0, 0}, {Gw - Gc, Gc, 0}, {Bw - Bc, Bc - Bs, Bs}}                 // S4
	out[4] = mathutil.Matrix3{{Rm, Rw - Rm, 0}, {0, Gw, 0}, {Bm - Bs, Bw - Bm, Bs}}                 // S5
	out[5] = mathutil.Matrix3{{Rs, Rw - Rm, Rm - Rs}, {0, Gw, 0}, {0, Bw - Bm, Bm}}                 // S6
	out[6] = mathutil.Matrix3{{Rs, Ry - Rs, Rw - Ry}, {Gy - Gs, Gs, Gw - Gy}, {0, 0, Bw}}           // S7
	out[7] = mathutil.Matrix3{{Rw, 0, 0}, {Gw - Gc, Gs, Gc - Gs}, {Bw - Bc, Bc - Bs, Bs}}           // S8
	out[8] = mathutil.Matrix3{{Rs, Rw - Rm, Rm - Rs}, {0, Gw, 0}, {Bm - Bs, Bw - Bm, Bs}}           // S9
	out[9] = mathutil.Matrix3{{Rs, Rw - Rs, 0}, {0, Gw, 0}, {0, 0, Bw}}                             // S10
	out[10] = mathutil.Matrix3{{Rw, 0, 0}, {0, Gs, Gw - Gs}, {0, 0, Bw}}                            // S11
	out[11] = mathutil.Matrix3{{Rw, 0, 0}, {0, Gw, 0}, {Bw - Bs, 0, Bs}}                            // S12
	out[12] = mathutil.Matrix3{{Rw, 0, 0}, {0, Gw, 0}, {0, 0, Bw}}                                  // S13

	return out
}

func max4(a, b, c, d float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}

// ApplyKinoshita selects the matrix from the 13-matrix set (by the
// ordering of input's R, G and B channels, following the patent's decision
// tree) and multiplies it by input.
func ApplyKinoshita(matrices [13]mathutil.Matrix3, input mathutil.Vec3) mathutil.Vec3 {
	var idx int
	switch {
	case input.X == input.Y:
		switch {
		case input.X == input.Z:
			idx = 12 // S13
		case input.X > input.Z:
			idx = 6 // S7
		default:
			idx = 11 // S12
		}
	case input.X > input.Y:
		switch {
		case input.Y == input.Z:
			idx = 9 // S10
		case input.Y > input.Z:
			idx = 0 // S1
		case input.X == input.Z:
			idx = 8 // S9
		case input.X > input.Z:
			idx = 5 // S6
		default:
			idx = 4 // S5
		}
	default: // input.Y > input.X
		switch {
		case input.X == input.Z:
			idx = 10 // S11
		case input.X > input.Z:
			idx = 1 // S2
		case input.Y == input.Z:
			idx = 7 // S8
		case input.Y > input.Z:
			idx = 2 // S3
		default:
			idx = 3 // S4
		}
	}
	return matrices[idx].MultVec(input)
}
