/*
NAME
  matrix3_test.go

DESCRIPTION
  matrix3_test.go contains functions for testing the 3x3 matrix type.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package mathutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMatrix3InvertIdentity(t *testing.T) {
	inv, ok := Identity3().Invert()
	if !ok {
		t.Fatal("identity matrix should be invertible")
	}
	if diff := cmp.Diff(Identity3(), inv, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("inverse of identity mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix3InvertRoundTrip(t *testing.T) {
	m := Matrix3{
		{0.6400, 0.3000, 0.1500},
		{0.3300, 0.6000, 0.0600},
		{0.0300, 0.1000, 0.7900},
	}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("matrix should be invertible")
	}
	got := m.Mult(inv)
	if diff := cmp.Diff(Identity3(), got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("m * m^-1 should be identity (-want +got):\n%s", diff)
	}
}

func TestMatrix3Singular(t *testing.T) {
	m := Matrix3{
		{1, 2, 3},
		{2, 4, 6},
		{1, 1, 1},
	}
	if _, ok := m.Invert(); ok {
		t.Error("expected singular matrix to be reported as non-invertible")
	}
}
