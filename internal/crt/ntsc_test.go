/*
NAME
  ntsc_test.go

DESCRIPTION
  ntsc_test.go contains functions for testing the NTSC matrix construction.

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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func TestWhiteBalance1953Tiers(t *testing.T) {
	tests := []struct {
		p          Precision
		wr, wg, wb float64
		tol        float64
	}{
		{PrecisionCrap, 0.30, 0.59, 0.11, 0},
		{PrecisionMid, 0.299, 0.587, 0.114, 0},
		// Full precision lands near the 3-digit truncation.
		{PrecisionFull, 0.299, 0.587, 0.114, 2e-3},
	}
	for _, tc := range tests {
		wr, wg, wb, err := WhiteBalance1953(tc.p)
		if err != nil {
			t.Fatalf("WhiteBalance1953(%v): %v", tc.p, err)
		}
		if math.Abs(wr-tc.wr) > tc.tol || math.Abs(wg-tc.wg) > tc.tol || math.Abs(wb-tc.wb) > tc.tol {
			t.Errorf("precision %v: got (%v, %v, %v), want ~(%v, %v, %v)", tc.p, wr, wg, wb, tc.wr, tc.wg, tc.wb)
		}
	}
}

func TestWhiteBalance1953FullSumsToOne(t *testing.T) {
	wr, wg, wb, err := WhiteBalance1953(PrecisionFull)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(1.0, wr+wg+wb, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("full-precision weights don't sum to 1 (-want +got):\n%s", diff)
	}
}

func TestIdealYUVRoundTrip(t *testing.T) {
	for _, p := range []Precision{PrecisionCrap, PrecisionMid, PrecisionFull} {
		fwd, err := MakeIdealRGBToYUV(p)
		if err != nil {
			t.Fatal(err)
		}
		inv, err := MakeIdealYUVToRGB(p)
		if err != nil {
			t.Fatal(err)
		}
		in := mathutil.Vec3{X: 0.8, Y: 0.4, Z: 0.1}
		got := inv.MultVec(fwd.MultVec(in))
		if diff := cmp.Diff(in, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("precision %v round trip mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestIdealRGBToYUVGrayHasNoChroma(t *testing.T) {
	fwd, err := MakeIdealRGBToYUV(PrecisionFull)
	if err != nil {
		t.Fatal(err)
	}
	got := fwd.MultVec(mathutil.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	if math.Abs(got.Y) > 1e-12 || math.Abs(got.Z) > 1e-12 {
		t.Errorf("gray produced chroma (U=%v, V=%v)", got.Y, got.Z)
	}
	if diff := cmp.Diff(0.5, got.X, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("gray luma mismatch (-want +got):\n%s", diff)
	}
}

func rowSums(m mathutil.Matrix3) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][0] + m[i][1] + m[i][2]
	}
	return out
}

func TestBuildModulatorMatrixRowNormalized(t *testing.T) {
	for mod := range tables.ModulatorInfo {
		m, err := BuildModulatorMatrix(tables.ModulatorInfo[mod], PrecisionFull)
		if err != nil {
			t.Fatalf("modulator %v: %v", mod, err)
		}
		for i, sum := range rowSums(m) {
			if math.Abs(sum-1.0) > 1e-12 {
				t.Errorf("modulator %v row %d sums to %v, want 1", mod, i, sum)
			}
		}
	}
}

func TestBuildDemodulatorMatrixRowNormalized(t *testing.T) {
	for demod := range tables.DemodulatorInfo {
		m, err := BuildDemodulatorMatrix(tables.DemodulatorInfo[demod], DemodulatorOptions{
			Autofix: true,
			Dummy:   demod == tables.DemodulatorDummy,
		}, PrecisionFull)
		if err != nil {
			t.Fatalf("demodulator %v: %v", demod, err)
		}
		for i, sum := range rowSums(m) {
			if math.Abs(sum-1.0) > 1e-12 {
				t.Errorf("demodulator %v row %d sums to %v, want 1", demod, i, sum)
			}
		}
	}
}

func TestDummyDemodulatorNearIdentity(t *testing.T) {
	// The dummy row is the no-correction case: its autofixed angles and
	// gains are exactly the idealized demodulation axes, so composing with
	// the idealized encoder lands on (approximately) the identity.
	m, err := BuildDemodulatorMatrix(tables.DemodulatorInfo[tables.DemodulatorDummy], DemodulatorOptions{
		Dummy: true,
	}, PrecisionFull)
	if err != nil {
		t.Fatal(err)
	}
	id := mathutil.Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-id[i][j]) > 2e-3 {
				t.Errorf("dummy demodulator [%d][%d] = %v, want ~%v", i, j, m[i][j], id[i][j])
			}
		}
	}
}

func TestMakeVanillaGreenQuadrant(t *testing.T) {
	angle, gain, err := MakeVanillaGreen(PrecisionFull)
	if err != nil {
		t.Fatal(err)
	}
	deg := angle * 180 / math.Pi
	if deg < 180 || deg > 270 {
		t.Errorf("vanilla green angle = %v degrees, want third quadrant", deg)
	}
	if gain < 0.3 || gain > 0.4 {
		t.Errorf("vanilla green gain = %v, want ~0.34", gain)
	}
}
