/*
NAME
  srgb_test.go

DESCRIPTION
  srgb_test.go contains functions for testing the transfer functions.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package colorspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		v := float64(i) / 1000.0
		got := SRGBToLinear(SRGBToGamma(v))
		if diff := cmp.Diff(v, got, cmpopts.EquateApprox(0, 2e-6)); diff != "" {
			t.Errorf("round trip mismatch at v=%v (-want +got):\n%s", v, diff)
		}
	}
}

func TestSRGBBreakpoints(t *testing.T) {
	if got := SRGBToGamma(0.0031308); got < 0.04 || got > 0.041 {
		t.Errorf("SRGBToGamma at the linear breakpoint = %v, want ~0.04045", got)
	}
	if got := SRGBToLinear(0.04045); got < 0.0031 || got > 0.0032 {
		t.Errorf("SRGBToLinear at the gamma breakpoint = %v, want ~0.0031308", got)
	}
}

func TestRec2084RoundTrip(t *testing.T) {
	for _, nits := range []float64{100, 203, 1000} {
		for i := 0; i <= 100; i++ {
			v := float64(i) / 100.0
			got := Rec2084ToLinear(Rec2084ToGamma(v, nits), nits)
			if diff := cmp.Diff(v, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
				t.Errorf("nits=%v v=%v round trip mismatch (-want +got):\n%s", nits, v, diff)
			}
		}
	}
}
