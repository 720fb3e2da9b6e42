/*
NAME
  crt_test.go

DESCRIPTION
  crt_test.go contains functions for testing the assembled CRT emulation profile.

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

	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func TestDescriptorRoundTrip(t *testing.T) {
	d, err := NewDescriptor(Params{
		BlackLevel:     0.001,
		WhiteLevel:     1.0,
		Precision:      PrecisionFull,
		UseDemodulator: true,
		Demodulator:    tables.DemodulatorCXA2025ASUS,
		Saturation:     1.1,
		GammaKnob:      1.05,
	})
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}

	for _, in := range []mathutil.Vec3{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 0.7, Y: 0.4, Z: 0.3},
		{X: 0.25, Y: 0.6, Z: 0.45},
	} {
		linear := d.GammaToLinear(in)
		back := d.LinearToGamma(linear, true)
		if diff := cmp.Diff(in, back, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("round trip of %+v mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestDescriptorPedestalCrushRoundTrip(t *testing.T) {
	d, err := NewDescriptor(Params{
		BlackLevel:    0.001,
		WhiteLevel:    1.0,
		Precision:     PrecisionFull,
		PedestalCrush: true,
	})
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}

	// Above the pedestal, crush then uncrush restores the input.
	in := mathutil.Vec3{X: 0.5, Y: 0.3, Z: 0.8}
	back := d.LinearToGamma(d.GammaToLinear(in), true)
	if diff := cmp.Diff(in, back, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("crush/uncrush round trip mismatch (-want +got):\n%s", diff)
	}

	// Below the pedestal, crush floors the signal at 0 (true black) and
	// uncrush raises it back only to the pedestal level.
	dark := mathutil.Vec3{X: 0.05, Y: 0.05, Z: 0.05}
	got := d.LinearToGamma(d.GammaToLinear(dark), true)
	want := mathutil.Vec3{X: DefaultPedestalAmount, Y: DefaultPedestalAmount, Z: DefaultPedestalAmount}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("sub-pedestal input (-want +got):\n%s", diff)
	}

	// Boundary sampling suppresses the uncrush so the low range stays
	// reachable.
	raw := d.LinearToGamma(d.GammaToLinear(mathutil.Vec3{X: 0.5, Y: 0.5, Z: 0.5}), false)
	uncrushed := d.LinearToGamma(d.GammaToLinear(mathutil.Vec3{X: 0.5, Y: 0.5, Z: 0.5}), true)
	if cmp.Diff(raw, uncrushed) == "" {
		t.Error("uncrush suppression had no effect")
	}
}

func TestDescriptorClampHigh(t *testing.T) {
	d, err := NewDescriptor(Params{
		BlackLevel:      0.001,
		WhiteLevel:      1.0,
		Precision:       PrecisionFull,
		ClampHigh:       1.1,
		ClampHighEnable: true,
	})
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	// With no correction matrix, an over-range input passes straight into
	// the clamp stage.
	got := d.GammaToLinear(mathutil.Vec3{X: 1.5, Y: 0.5, Z: 0.5})
	limit := d.EOTF().ToLinear(1.1)
	if got.X > limit+1e-12 {
		t.Errorf("over-range red emitted %v, want clamped at %v", got.X, limit)
	}
}

func TestDescriptorZeroLightClamp(t *testing.T) {
	d, err := NewDescriptor(Params{
		BlackLevel:          0.001,
		WhiteLevel:          1.0,
		Precision:           PrecisionFull,
		ClampLowAtZeroLight: true,
	})
	if err != nil {
		t.Fatalf("NewDescriptor: %v", err)
	}
	if !d.EOTF().ZeroLightClamp {
		t.Fatal("zero-light clamp not enabled")
	}
	if d.clampLow != -d.EOTF().B {
		t.Errorf("low clamp = %v, want the zero-light level %v", d.clampLow, -d.EOTF().B)
	}
	// The zero-light input produces exactly zero normalized light... which
	// the EOTF's normalization then maps to the -black/(white-black) floor.
	got := d.GammaToLinear(mathutil.Vec3{X: d.clampLow, Y: d.clampLow, Z: d.clampLow})
	floor := -d.EOTF().BlackLevel / (d.EOTF().WhiteLevel - d.EOTF().BlackLevel)
	if diff := cmp.Diff(floor, got.X, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("zero-light output (-want +got):\n%s", diff)
	}
}
