/*
NAME
  spectrum_test.go

DESCRIPTION
  spectrum_test.go contains functions for testing the composite spectrum diagnostic.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nes

import "testing"

func TestSpectrumOfChromaticHueHasSubcarrierEnergy(t *testing.T) {
	sim := mustNew(t, ntscDefaults())
	spec := sim.SpectrumOf(5, 1, 0, 8)

	if len(spec.Magnitude) == 0 {
		t.Fatal("SpectrumOf returned no magnitude bins")
	}
	if spec.SubcarrierBin <= 0 || spec.SubcarrierBin >= len(spec.Magnitude) {
		t.Fatalf("SubcarrierBin %d out of range [1,%d)", spec.SubcarrierBin, len(spec.Magnitude))
	}
	// A chromatic hue (not the grey 0x0/0xD-0xF band) must carry visible
	// energy at the subcarrier bin, not just at DC.
	if spec.Magnitude[spec.SubcarrierBin] <= 0 {
		t.Errorf("expected nonzero energy at subcarrier bin %d, got %v", spec.SubcarrierBin, spec.Magnitude[spec.SubcarrierBin])
	}
}

func TestSpectrumOfGreyHueHasNoSubcarrierEnergy(t *testing.T) {
	sim := mustNew(t, ntscDefaults())
	spec := sim.SpectrumOf(0x0, 1, 0, 8)

	if spec.Magnitude[spec.SubcarrierBin] > 1e-9 {
		t.Errorf("grey hue 0x0 should carry no subcarrier energy, got %v", spec.Magnitude[spec.SubcarrierBin])
	}
}
