/*
NAME
  gconfig_test.go

DESCRIPTION
  gconfig_test.go contains functions for testing the config file parser.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gconfig

import (
	"strings"
	"testing"
)

func TestLoadBasic(t *testing.T) {
	input := `
# a comment
source_gamut = ntsc1953
dest_gamut = srgb
gamma_mode = srgb
map_mode = compress
remap_factor = 0.4
soft_knee = true
crt_mode = front
black_level = 0.001
`
	c, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SourceGamut != "ntsc1953" || c.DestGamut != "srgb" {
		t.Errorf("gamut fields: got %q/%q", c.SourceGamut, c.DestGamut)
	}
	if c.GammaMode != GammaSRGB {
		t.Errorf("GammaMode = %v, want GammaSRGB", c.GammaMode)
	}
	if c.MapMode != MapCompress {
		t.Errorf("MapMode = %v, want MapCompress", c.MapMode)
	}
	if c.RemapFactor != 0.4 {
		t.Errorf("RemapFactor = %v, want 0.4", c.RemapFactor)
	}
	if !c.SoftKnee {
		t.Errorf("SoftKnee = false, want true")
	}
	if c.CRTModeOpt != CRTFront {
		t.Errorf("CRTModeOpt = %v, want CRTFront", c.CRTModeOpt)
	}
	if c.BlackLevel != 0.001 {
		t.Errorf("BlackLevel = %v, want 0.001", c.BlackLevel)
	}
}

func TestLoadCustomWhitepoint(t *testing.T) {
	c, err := Load(strings.NewReader("source_custom_xy = 0.281, 0.311\ndest_custom_cct = 6504\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SourceCustomXY != [2]float64{0.281, 0.311} {
		t.Errorf("SourceCustomXY = %v, want {0.281 0.311}", c.SourceCustomXY)
	}
	if c.DestCustomCCT != 6504 {
		t.Errorf("DestCustomCCT = %v, want 6504", c.DestCustomCCT)
	}
}

func TestLoadMalformedXYPair(t *testing.T) {
	_, err := Load(strings.NewReader("source_custom_xy = 0.281\n"))
	if err == nil {
		t.Fatal("expected error for a missing y component")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(strings.NewReader("bogus_key = 1\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadMalformedValue(t *testing.T) {
	_, err := Load(strings.NewReader("remap_factor = not-a-number\n"))
	if err == nil {
		t.Fatal("expected error for malformed float")
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.RemapFactor != 0.4 || c.RemapLimit != 0.8 || c.KneeFactor != 0.2 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}
