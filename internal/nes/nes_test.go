/*
NAME
  nes_test.go

DESCRIPTION
  nes_test.go contains functions for testing the PPU composite simulation.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nes

import (
	"testing"

	"github.com/crtlab/gamutthingy/internal/crt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func ntscDefaults() Params {
	return Params{
		PALMode:                 false,
		ColorburstAmpCorrection: true,
		PhaseSkew26A:            4.5,
		LumaBoost48C:            1.0,
		PhaseSkewPerLumaStep:    -2.5,
		Precision:               crt.PrecisionFull,
	}
}

func mustNew(t *testing.T, p Params) Simulation {
	t.Helper()
	sim, err := New(p)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}

func TestToYUVPublishedPalette(t *testing.T) {
	sim := mustNew(t, ntscDefaults())
	got := sim.ToYUV(5, 1, 0)
	want := [3]float64{0.43, -0.09, 0.25}
	if diff := cmp.Diff(want[0], got.X, cmpopts.EquateApprox(0, 1e-2)); diff != "" {
		t.Errorf("Y mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[1], got.Y, cmpopts.EquateApprox(0, 1e-2)); diff != "" {
		t.Errorf("U mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[2], got.Z, cmpopts.EquateApprox(0, 1e-2)); diff != "" {
		t.Errorf("V mismatch (-want +got):\n%s", diff)
	}
}

func TestToRGBInRangeApprox(t *testing.T) {
	sim := mustNew(t, ntscDefaults())
	for hue := 0; hue < 0xD; hue++ {
		for luma := 0; luma < 4; luma++ {
			rgb := sim.ToRGB(hue, luma, 0)
			for _, c := range [3]float64{rgb.X, rgb.Y, rgb.Z} {
				if c < -0.05 || c > 1.05 {
					t.Errorf("hue=%d luma=%d: channel %v out of expected range", hue, luma, c)
				}
			}
		}
	}
}

func TestPALPhase(t *testing.T) {
	if got := palPhase(5); got != 0 {
		t.Errorf("palPhase(5) = %d, want 0", got)
	}
	if got := palPhase(13); got != 13 {
		t.Errorf("palPhase(13) = %d, want 13 (outside 1..12)", got)
	}
}
