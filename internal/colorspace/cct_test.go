/*
NAME
  cct_test.go

DESCRIPTION
  cct_test.go contains functions for testing CCT-to-chromaticity conversion.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import (
	"math"
	"testing"

	"github.com/crtlab/gamutthingy/internal/mathutil"
)

func vec2(x, y float64) mathutil.Vec2 { return mathutil.Vec2{X: x, Y: y} }

func TestXYFromCCTDaylightD65(t *testing.T) {
	got := XYFromCCT(6504, DaylightLocus, 0, MPCDCIE1960)
	if math.Abs(got.X-0.31271) > 1e-3 || math.Abs(got.Y-0.32902) > 1e-3 {
		t.Errorf("daylight 6504K = (%v, %v), want ~(0.31271, 0.32902)", got.X, got.Y)
	}
}

func TestXYFromCCTPlanckianNearD65(t *testing.T) {
	// D65 itself sits on the daylight locus, slightly above the blackbody
	// curve, so the Planckian point at the same temperature is close but
	// not coincident.
	got := XYFromCCT(6500, PlanckianLocus, 0, MPCDCIE1960)
	if math.Abs(got.X-D65.X) > 6e-3 || math.Abs(got.Y-D65.Y) > 6e-3 {
		t.Errorf("planckian 6500K = (%v, %v), want within 0.006 of D65 (%v, %v)", got.X, got.Y, D65.X, D65.Y)
	}
}

func TestXYFromCCTMPCDOffsetMoves(t *testing.T) {
	base := XYFromCCT(9300, PlanckianLocus, 0, MPCDCIE1960)
	offset := XYFromCCT(9300, PlanckianLocus, 27, MPCDCIE1960)
	dist := math.Hypot(offset.X-base.X, offset.Y-base.Y)
	if dist == 0 {
		t.Fatal("27 MPCD offset did not move the whitepoint")
	}
	// 27 MPCD at 0.0004 delta-uv per unit is about 0.011 in uv; the xy
	// displacement lands in the same order of magnitude.
	if dist < 1e-3 || dist > 5e-2 {
		t.Errorf("27 MPCD displacement = %v, outside the plausible range", dist)
	}
}

func TestXYFromCCT9300K27MPCDNearTableValue(t *testing.T) {
	// The published NTSC-J whitepoint this constructs from scratch.
	got := XYFromCCT(9300, PlanckianLocus, 27, MPCDJudd1935)
	if math.Abs(got.X-0.281) > 5e-3 || math.Abs(got.Y-0.311) > 5e-3 {
		t.Errorf("9300K+27MPCD = (%v, %v), want near (0.281, 0.311)", got.X, got.Y)
	}
}

func TestXYFromCCT9300K8MPCDNearTableValue(t *testing.T) {
	// The 8 MPCD variant reproduces its published coordinates almost
	// exactly, which pins down both the locus integration and the Judd
	// UCS offset direction.
	got := XYFromCCT(9300, PlanckianLocus, 8, MPCDJudd1935)
	if math.Abs(got.X-0.28345) > 5e-4 || math.Abs(got.Y-0.29775) > 5e-4 {
		t.Errorf("9300K+8MPCD = (%v, %v), want near (0.28345, 0.29775)", got.X, got.Y)
	}
}

func TestUCSRoundTrips(t *testing.T) {
	points := []struct{ x, y float64 }{
		{0.3127, 0.3290},
		{0.281, 0.311},
		{0.64, 0.33},
		{0.15, 0.06},
	}
	type pair struct {
		name    string
		forward func(x, y float64) (float64, float64)
		inverse func(u, v float64) (float64, float64)
	}
	pairs := []pair{
		{
			"cie1960",
			func(x, y float64) (float64, float64) {
				uv := XYToCIE1960UV(vec2(x, y))
				return uv.X, uv.Y
			},
			func(u, v float64) (float64, float64) {
				xy := CIE1960UVToXY(vec2(u, v))
				return xy.X, xy.Y
			},
		},
		{
			"judd1935",
			func(x, y float64) (float64, float64) {
				uv := XYToJuddXY(vec2(x, y))
				return uv.X, uv.Y
			},
			func(u, v float64) (float64, float64) {
				xy := JuddXYToXY(vec2(u, v))
				return xy.X, xy.Y
			},
		},
		{
			"judd-macadam",
			func(x, y float64) (float64, float64) {
				uv := XYToJuddMacAdamUV(vec2(x, y))
				return uv.X, uv.Y
			},
			func(u, v float64) (float64, float64) {
				xy := JuddMacAdamUVToXY(vec2(u, v))
				return xy.X, xy.Y
			},
		},
	}
	for _, p := range pairs {
		for _, pt := range points {
			u, v := p.forward(pt.x, pt.y)
			x, y := p.inverse(u, v)
			if math.Abs(x-pt.x) > 1e-9 || math.Abs(y-pt.y) > 1e-9 {
				t.Errorf("%s round trip of (%v, %v) gave (%v, %v)", p.name, pt.x, pt.y, x, y)
			}
		}
	}
}
