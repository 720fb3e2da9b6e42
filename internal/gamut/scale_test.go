/*
NAME
  scale_test.go

DESCRIPTION
  scale_test.go contains functions for testing the knee distance scaling.

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
)

func TestScaleDistanceSafeZoneUnchanged(t *testing.T) {
	p := MapParams{RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}
	got, changed := scaleDistance(0.1, 1.0, 0.8, p)
	if changed {
		t.Errorf("distance 0.1 inside the safe zone was changed to %v", got)
	}
}

func TestScaleDistanceCompressionStaysInsideDest(t *testing.T) {
	for _, soft := range []bool{false, true} {
		p := MapParams{RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, SoftKnee: soft}
		for _, d := range []float64{0.7, 0.8, 0.9, 1.0} {
			got, changed := scaleDistance(d, 1.0, 0.8, p)
			if !changed {
				continue
			}
			if got > 0.8+1e-12 {
				t.Errorf("soft=%v d=%v compressed to %v, beyond the dest boundary 0.8", soft, d, got)
			}
			if got > d {
				t.Errorf("soft=%v d=%v compression increased the distance to %v", soft, d, got)
			}
		}
	}
}

func TestScaleDistanceCompressionMonotone(t *testing.T) {
	for _, soft := range []bool{false, true} {
		p := MapParams{RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, SoftKnee: soft}
		prev := -1.0
		for i := 0; i <= 200; i++ {
			d := float64(i) / 200.0
			got, changed := scaleDistance(d, 1.0, 0.8, p)
			if !changed {
				got = d
			}
			if got < prev {
				t.Fatalf("soft=%v: output not monotone at d=%v (%v < %v)", soft, d, got, prev)
			}
			prev = got
		}
	}
}

func TestScaleDistanceExpansionInvertsCompression(t *testing.T) {
	for _, soft := range []bool{false, true} {
		compress := MapParams{RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2, SoftKnee: soft}
		expand := compress
		expand.Expand = true
		for _, d := range []float64{0.66, 0.7, 0.715, 0.72, 0.725, 0.75, 0.8, 0.9, 1.0} {
			compressed, changed := scaleDistance(d, 1.0, 0.8, compress)
			if !changed {
				continue
			}
			// Expansion with source/dest swapped is the algebraic inverse.
			restored, changed := scaleDistance(compressed, 0.8, 1.0, expand)
			if !changed {
				restored = compressed
			}
			if diff := cmp.Diff(d, restored, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("soft=%v d=%v did not round trip (-want +got):\n%s", soft, d, diff)
			}
		}
	}
}

func TestScaleDistanceNoExpandWithoutFlag(t *testing.T) {
	p := MapParams{RemapFactor: 0.4, RemapLimit: 0.8, KneeFactor: 0.2}
	got, changed := scaleDistance(0.9, 0.8, 1.0, p)
	if changed {
		t.Errorf("expansion applied without Expand set: %v", got)
	}
}

func TestScaleDistanceDestBasedSafeZone(t *testing.T) {
	// Dest-based (const-fidelity) pins the knee at inner*RemapLimit even
	// when the delta-based knee would be farther out.
	p := MapParams{RemapFactor: 0.1, RemapLimit: 0.5, KneeFactor: 0, SafeZone: SafeZoneDestBased}
	got, changed := scaleDistance(0.5, 1.0, 0.8, p)
	if !changed {
		t.Fatal("distance at the dest-based knee point was not remapped")
	}
	if got >= 0.5 {
		t.Errorf("dest-based knee did not compress: %v", got)
	}
}
