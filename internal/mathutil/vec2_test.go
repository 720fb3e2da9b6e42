/*
NAME
  vec2_test.go

DESCRIPTION
  vec2_test.go contains functions for testing the 2D geometry primitives.

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

func TestLineIntersection2D(t *testing.T) {
	tests := []struct {
		name             string
		a, b, c, d       Vec2
		want             Vec2
		wantOK           bool
	}{
		{
			name: "perpendicular crossing at origin",
			a:    Vec2{-1, 0}, b: Vec2{1, 0},
			c: Vec2{0, -1}, d: Vec2{0, 1},
			want: Vec2{0, 0}, wantOK: true,
		},
		{
			name: "parallel lines",
			a:    Vec2{0, 0}, b: Vec2{1, 0},
			c: Vec2{0, 1}, d: Vec2{1, 1},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineIntersection2D(tt.a, tt.b, tt.c, tt.d)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("intersection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsBetween2D(t *testing.T) {
	a, b, c := Vec2{0, 0}, Vec2{1, 1}, Vec2{2, 2}
	if !IsBetween2D(a, b, c) {
		t.Errorf("expected b to be between a and c")
	}
	if IsBetween2D(a, c, b) {
		t.Errorf("did not expect c to be between a and b")
	}
}

func TestDistanceToSegment(t *testing.T) {
	d := DistanceToSegment(Vec2{0, 1}, Vec2{-1, 0}, Vec2{1, 0})
	if diff := cmp.Diff(1.0, d, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("distance mismatch (-want +got):\n%s", diff)
	}
}
