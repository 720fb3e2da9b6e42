/*
NAME
  boundary_test.go

DESCRIPTION
  boundary_test.go contains functions for testing boundary ray queries.

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
	"testing"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func TestBoundAboveExtendsPastCusp(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)

	for _, h := range []int{0, 450, 900, 1350} {
		slice := &g.Slices[h]
		// A ray from black through a point at half the cusp's slope exits
		// through the cusp-to-fake-lower extension, so its chroma can't be
		// less than the cusp's.
		color := mathutil.Vec2{X: slice.CuspChroma, Y: slice.CuspLuma * 0.5}
		pt := g.getBoundary2D(color, 0, h, BoundAbove)
		if pt.X < slice.CuspChroma-mathutil.Epsilon {
			t.Errorf("slice %d: BoundAbove exit chroma %v below the cusp's %v", h, pt.X, slice.CuspChroma)
		}
	}
}

func TestBoundBelowExtendsAboveCusp(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)

	for _, h := range []int{0, 450, 900, 1350} {
		slice := &g.Slices[h]
		// A horizontal ray above the cusp's luma crosses the fake-upper
		// extension rather than the real upper branch, so its chroma can't
		// be less than the real boundary's there.
		luma := (slice.CuspLuma + g.MaxLuma) / 2
		color := mathutil.Vec2{X: slice.CuspChroma * 0.1, Y: luma}
		normal := g.getBoundary2D(color, luma, h, BoundNormal)
		below := g.getBoundary2D(color, luma, h, BoundBelow)
		if below.X < normal.X-mathutil.Epsilon {
			t.Errorf("slice %d: BoundBelow exit chroma %v under the normal boundary's %v", h, below.X, normal.X)
		}
	}
}

func TestBoundary3DMatchesSliceAtExactHue(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)

	h := 300
	hue := float64(h) * HuePerStep
	slice := &g.Slices[h]
	color := mathutil.Vec3{X: slice.CuspLuma, Y: slice.CuspChroma * 0.5, Z: hue}

	got := g.getBoundary3D(color, slice.CuspLuma, h, BoundNormal, false)
	want2D := g.getBoundary2D(mathutil.Vec2{X: color.Y, Y: color.X}, slice.CuspLuma, h, BoundNormal)

	if math.Abs(got.X-want2D.Y) > 1e-9 || math.Abs(got.Y-want2D.X) > 1e-9 || math.Abs(got.Z-hue) > 1e-9 {
		t.Errorf("3D query at an exact slice hue = %+v, want the 2D result (%v, %v) at hue %v", got, want2D.Y, want2D.X, hue)
	}
}

func TestHueToFloorIndex(t *testing.T) {
	tests := []struct {
		hue    float64
		index  int
		excess float64
	}{
		{0, 0, 0},
		{0.5 * HuePerStep, 0, 0.5},
		{1.5 * HuePerStep, 1, 0.5},
		{float64(HueSteps-1)*HuePerStep + 0.5*HuePerStep, HueSteps - 1, 0.5},
	}
	for _, tc := range tests {
		idx, excess := hueToFloorIndex(tc.hue)
		if idx != tc.index {
			t.Errorf("hue %v: index %d, want %d", tc.hue, idx, tc.index)
		}
		if math.Abs(excess-tc.excess) > 1e-6 {
			t.Errorf("hue %v: excess %v, want %v", tc.hue, excess, tc.excess)
		}
	}
}
