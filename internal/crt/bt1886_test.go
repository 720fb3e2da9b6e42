/*
NAME
  bt1886_test.go

DESCRIPTION
  bt1886_test.go contains functions for testing the BT.1886 EOTF fit.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package crt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewBT1886BlackZero(t *testing.T) {
	c := NewBT1886(0, 1.0, nil)
	if diff := cmp.Diff(0.0, c.B, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("b mismatch for zero black level (-want +got):\n%s", diff)
	}
}

func TestNewBT1886MeasuredBlack(t *testing.T) {
	c := NewBT1886(0.001, 1.0, nil)
	if diff := cmp.Diff(0.0101, c.B, cmpopts.EquateApprox(0, 5e-3)); diff != "" {
		t.Errorf("b mismatch (-want +got):\n%s", diff)
	}
}

func TestBT1886RoundTrip(t *testing.T) {
	c := NewBT1886(0.001, 1.0, nil)
	for _, v := range []float64{0, 0.1, 0.25, 0.5, 0.75, 1.0} {
		got := c.ToGamma(c.ToLinear(v))
		if diff := cmp.Diff(v, got, cmpopts.EquateApprox(0, 2e-6)); diff != "" {
			t.Errorf("round trip mismatch at v=%v (-want +got):\n%s", v, diff)
		}
	}
}
