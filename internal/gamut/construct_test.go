/*
NAME
  construct_test.go

DESCRIPTION
  construct_test.go contains functions for testing gamut boundary construction.

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

func TestSliceInvariants(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)

	for h := 0; h < HueSteps; h += 37 { // every slice is slow; a stride covers the circle well.
		slice := &g.Slices[h]
		if len(slice.Points) < 3 {
			t.Fatalf("slice %d has %d points, want >= 3", h, len(slice.Points))
		}
		first := slice.Points[0]
		last := slice.Points[len(slice.Points)-1]
		if first.Chroma != 0 || first.Luma != 0 {
			t.Errorf("slice %d first point = (%v, %v), want black (0, 0)", h, first.Chroma, first.Luma)
		}
		if last.Chroma != 0 || math.Abs(last.Luma-g.MaxLuma) > mathutil.Epsilon {
			t.Errorf("slice %d last point = (%v, %v), want white (0, %v)", h, last.Chroma, last.Luma, g.MaxLuma)
		}

		cusps := 0
		for _, pt := range slice.Points {
			if pt.IsCusp {
				cusps++
			}
		}
		if cusps != 1 {
			t.Errorf("slice %d has %d cusp flags, want exactly 1", h, cusps)
		}

		for i := 1; i < len(slice.Points); i++ {
			a, b := slice.Points[i-1], slice.Points[i]
			if math.Abs(a.Chroma-b.Chroma) < mathutil.Epsilon && math.Abs(a.Luma-b.Luma) < mathutil.Epsilon {
				t.Errorf("slice %d points %d and %d are duplicates within epsilon", h, i-1, i)
			}
		}

		if slice.CuspChroma <= 0 {
			t.Errorf("slice %d cusp chroma = %v, want > 0", h, slice.CuspChroma)
		}
		if slice.CuspLuma <= 0 || slice.CuspLuma >= g.MaxLuma {
			t.Errorf("slice %d cusp luma = %v, want inside (0, %v)", h, slice.CuspLuma, g.MaxLuma)
		}

		if slice.FakeLower.X < 2.9*g.MaxChroma {
			t.Errorf("slice %d fake lower point chroma = %v, want ~3x max chroma %v", h, slice.FakeLower.X, 3*g.MaxChroma)
		}
		if math.Abs(slice.FakeUpper.Y-1.5*g.MaxLuma) > mathutil.Epsilon {
			t.Errorf("slice %d fake upper point luma = %v, want 1.5x max luma", h, slice.FakeUpper.Y)
		}
	}
}

func TestCuspIsBoundaryMaximum(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)
	// The cusp scan and the per-row fine sampling both estimate a boundary
	// as the midpoint of their last in/out pair, so they can disagree by up
	// to a fine chroma step.
	slack := g.MaxChroma / ChromaSteps / FineChromaSteps
	for h := 0; h < HueSteps; h += 311 {
		slice := &g.Slices[h]
		for _, pt := range slice.Points {
			if pt.Chroma > slice.CuspChroma+slack {
				t.Errorf("slice %d has a boundary point at chroma %v beyond the cusp %v", h, pt.Chroma, slice.CuspChroma)
			}
		}
	}
}

func TestBoundary2DHitsUnitCubeFaces(t *testing.T) {
	g := buildTestGamut(t, "srgb", tables.GamutSRGB)

	// A horizontal ray from the neutral axis at mid luma must exit through
	// the sampled boundary: the exit point converts to a linear RGB with at
	// least one channel pinned near 0 or 1.
	for h := 0; h < HueSteps; h += 97 {
		focal := g.MaxLuma * 0.5
		color := mathutil.Vec2{X: g.MaxChroma * 0.01, Y: focal}
		pt := g.getBoundary2D(color, focal, h, BoundNormal)
		rgb := g.JzCzhzToLinearRGB(mathutil.Vec3{X: pt.Y, Y: pt.X, Z: float64(h) * HuePerStep})
		atFace := false
		for _, c := range [3]float64{rgb.X, rgb.Y, rgb.Z} {
			if math.Abs(c) < 5e-2 || math.Abs(c-1) < 5e-2 {
				atFace = true
			}
		}
		if !atFace {
			t.Errorf("slice %d boundary point %v maps to rgb %+v, not near any cube face", h, pt, rgb)
		}
	}
}

func TestNewRejectsDegeneratePrimaries(t *testing.T) {
	prim := tables.Primaries{
		R: [3]float64{0.3, 0.3, 0.4},
		G: [3]float64{0.3, 0.3, 0.4},
		B: [3]float64{0.3, 0.3, 0.4},
	}
	_, err := New(Params{
		Name:       "degenerate",
		Primaries:  prim,
		Whitepoint: tables.WhitepointXY[tables.WhitepointD65],
		CAT:        tables.CATBradford,
	})
	if err == nil {
		t.Fatal("expected an error for coincident primaries")
	}
}
