/*
NAME
  mapping_test.go

DESCRIPTION
  mapping_test.go contains functions for testing the gamut mapping entry point.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gamut

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func buildTestGamut(t *testing.T, name string, g tables.Gamut) *GBD {
	t.Helper()
	prim := tables.GamutPrimaries[g]
	wp := tables.WhitepointXY[tables.WhitepointD65]
	gbd, err := New(Params{
		Name:       name,
		Primaries:  prim,
		Whitepoint: wp,
		CAT:        tables.CATBradford,
	})
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	return gbd
}

func TestMapColorBlackWhitePassthrough(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutNTSC1953)
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)

	p := MapParams{Direction: MapGCUSP, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}

	black := mathutil.Vec3{X: 0, Y: 0, Z: 0}
	white := mathutil.Vec3{X: 1, Y: 1, Z: 1}

	if got := MapColor(black, src, dst, p); (cmp.Diff(black, got) != "") {
		t.Errorf("black did not pass through unchanged: got %+v", got)
	}
	if got := MapColor(white, src, dst, p); (cmp.Diff(white, got) != "") {
		t.Errorf("white did not pass through unchanged: got %+v", got)
	}
}

func TestMapColorIdentitySameGamut(t *testing.T) {
	g := buildTestGamut(t, "g", tables.GamutSRGB)
	p := MapParams{Direction: MapGCUSP, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}

	in := mathutil.Vec3{X: 0.8, Y: 0.2, Z: 0.4}
	out := MapColor(in, g, g, p)
	if diff := cmp.Diff(in, out, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("identity mapping within same gamut mismatch (-want +got):\n%s", diff)
	}
}

func TestMapColorNTSCJRedCompressesIntoSRGB(t *testing.T) {
	prim := tables.GamutPrimaries[tables.GamutP22Trinitron]
	src, err := New(Params{
		Name:       "ntsc-j",
		Primaries:  prim,
		Whitepoint: tables.WhitepointXY[tables.Whitepoint9300K27MPCD],
		CAT:        tables.CATBradford,
	})
	if err != nil {
		t.Fatalf("building ntsc-j: %v", err)
	}
	dst := buildTestGamut(t, "srgb", tables.GamutSRGB)

	p := MapParams{Direction: MapGCUSP, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, SoftKnee: true}

	// Pure red as mastered for the 9300K CRT sits on the source boundary;
	// compression lands it on (or just inside) the sRGB boundary.
	in := mathutil.Vec3{X: 1, Y: 0, Z: 0}
	got := MapColor(in, src, dst, p)
	if cmp.Diff(in, got) == "" {
		t.Error("out-of-gamut red passed through unchanged")
	}
	for _, c := range [3]float64{got.X, got.Y, got.Z} {
		if c < -5e-2 || c > 1+5e-2 {
			t.Errorf("mapped channel %v far outside [0,1]", c)
		}
	}
}

func TestMapColorVPRCAppliesCCC(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutNTSC1953)
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)
	matrices := PrepareLockMap(src, dst)

	base := MapParams{Direction: MapVPR, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}
	vprc := MapParams{Direction: MapVPRC, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, CCC: CCCKinoshita, Matrices: matrices}

	in := mathutil.Vec3{X: 0.7, Y: 0.3, Z: 0.5}
	withoutCCC := MapColor(in, src, dst, base)
	withCCC := MapColor(in, src, dst, vprc)

	if cmp.Diff(withoutCCC, withCCC) == "" {
		t.Error("expected MapVPRC with a Kinoshita circuit to differ from plain MapVPR")
	}
}

func TestMapColorVPRCNoopWithoutCCC(t *testing.T) {
	src := buildTestGamut(t, "src", tables.GamutNTSC1953)
	dst := buildTestGamut(t, "dst", tables.GamutSRGB)

	base := MapParams{Direction: MapVPR, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}
	vprc := MapParams{Direction: MapVPRC, RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}

	in := mathutil.Vec3{X: 0.7, Y: 0.3, Z: 0.5}
	if diff := cmp.Diff(MapColor(in, src, dst, base), MapColor(in, src, dst, vprc)); diff != "" {
		t.Errorf("MapVPRC with CCCNone should match MapVPR exactly (-want +got):\n%s", diff)
	}
}
