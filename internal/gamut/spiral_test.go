/*
NAME
  spiral_test.go

DESCRIPTION
  spiral_test.go contains functions for testing the Spiral CARISMA pre-warp.

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
	"sort"
	"testing"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func vec3(x, y, z float64) mathutil.Vec3 { return mathutil.Vec3{X: x, Y: y, Z: z} }

func spiralTestParams() MapParams {
	return MapParams{Direction: MapGCUSP, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, SpiralCARISMA: true}
}

func TestPrimaryRotationsZeroForIdenticalGamuts(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutSRGB)
	src.Spiral = SpiralCARISMA{Enabled: true, Floor: 0.7, Ceiling: 1.0, ScaleMode: ScaleModeCubicHermite}
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)

	src.PrepareSpiralCARISMA(dst, 1.0, spiralTestParams())

	rotations := []float64{
		src.RedRotation, src.YellowRotation, src.GreenRotation,
		src.CyanRotation, src.BlueRotation, src.MagentaRotation,
	}
	for i, r := range rotations {
		if r != 0 {
			t.Errorf("anchor %d rotated by %v mapping a gamut onto itself", i, r)
		}
	}
}

func TestFindHueRotationFadesAcrossChroma(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutNTSC1953)
	src.Spiral = SpiralCARISMA{Enabled: true, Floor: 0.7, Ceiling: 1.0, ScaleMode: ScaleModeCubicHermite}
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)

	src.PrepareSpiralCARISMA(dst, 1.0, spiralTestParams())

	greenHue := src.AdjPolarGreen.Z
	full := src.FindHueMaxRotation(greenHue)
	if full == 0 {
		t.Skip("green needed no rotation for this gamut pair")
	}

	floorIdx, excess := hueToFloorIndex(greenHue)
	ceilIdx := (floorIdx + 1) % HueSteps
	cuspChroma := src.Slices[floorIdx].CuspChroma*(1-excess) + src.Slices[ceilIdx].CuspChroma*excess

	below := src.FindHueRotation(vec3(src.AdjPolarGreen.X, 0.5*cuspChroma, greenHue))
	if below != 0 {
		t.Errorf("rotation below the floor = %v, want 0", below)
	}

	mid := src.FindHueRotation(vec3(src.AdjPolarGreen.X, 0.8*cuspChroma, greenHue))
	frac := mid / full
	if frac < 0.25 || frac > 0.75 {
		t.Errorf("rotation at 0.8 of cusp chroma is %.0f%% of full, want 25-75%%", frac*100)
	}

	top := src.FindHueRotation(vec3(src.AdjPolarGreen.X, 1.2*cuspChroma, greenHue))
	if math.Abs(top-full) > 1e-12 {
		t.Errorf("rotation at the cusp = %v, want the full %v", top, full)
	}
}

func TestWarpRangesPartitionChromaDomain(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutNTSC1953)
	src.Spiral = SpiralCARISMA{Enabled: true, Floor: 0.7, Ceiling: 1.0, ScaleMode: ScaleModeCubicHermite}
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)

	src.PrepareSpiralCARISMA(dst, 1.0, spiralTestParams())

	// For every rotating slice, its self-warp range plus the sub-ranges it
	// handed to neighboring slices must tile [0, +inf) without gaps.
	contributed := make(map[int][]warpRange)
	for h := 0; h < HueSteps; h++ {
		for _, r := range src.Slices[h].Impinging {
			contributed[r.TargetSlice] = append(contributed[r.TargetSlice], r)
		}
	}

	sawRotation := false
	for h := 0; h < HueSteps; h++ {
		if !src.Slices[h].RotationNeeded {
			continue
		}
		sawRotation = true
		ranges := append([]warpRange{src.Slices[h].SelfWarp}, contributed[h]...)
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Floor < ranges[j].Floor })
		if ranges[0].Floor != 0 {
			t.Errorf("slice %d warp ranges start at %v, want 0", h, ranges[0].Floor)
		}
		for i := 1; i < len(ranges); i++ {
			if ranges[i].Floor != ranges[i-1].Ceiling {
				t.Errorf("slice %d warp ranges have a gap: %v then %v", h, ranges[i-1].Ceiling, ranges[i].Floor)
			}
		}
		if last := ranges[len(ranges)-1]; last.Ceiling != math.MaxFloat64 {
			t.Errorf("slice %d final warp range ceiling = %v, want unbounded", h, last.Ceiling)
		}
	}
	if !sawRotation {
		t.Skip("no slice needed rotation for this gamut pair")
	}
}
