/*
NAME
  nesfrontend.go

DESCRIPTION
  nesfrontend.go builds the pipeline.NESFrontEnd a source image rendered
  from the standard 64-entry NES palette (no emphasis bits) needs: Hue
  recovers which (hue, luma) palette entry a pixel's gamma R'G'B' is
  nearest to by brute-force search over the simulation's own reference
  table, and ToRGB is the simulation's forward direction. Recovering the
  emphasis bits isn't possible from RGB alone (several emphasis
  combinations alias to similar colors), so this always assumes no
  emphasis; a caller that knows the source's emphasis bits per pixel
  should build a pipeline.NESFrontEnd directly instead of using this one.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/nes"
	"github.com/crtlab/gamutthingy/pipeline"
)

const (
	nesHueCount  = 16
	nesLumaCount = 4
)

// buildNESFrontEnd wraps sim into a pipeline.NESFrontEnd, precomputing the
// no-emphasis palette table Hue searches.
func buildNESFrontEnd(sim nes.Simulation) *pipeline.NESFrontEnd {
	var table [nesHueCount][nesLumaCount]mathutil.Vec3
	for hue := 0; hue < nesHueCount; hue++ {
		for luma := 0; luma < nesLumaCount; luma++ {
			table[hue][luma] = sim.ToRGB(hue, luma, 0)
		}
	}

	return &pipeline.NESFrontEnd{
		Hue: func(rgb mathutil.Vec3) (int, int, int) {
			bestHue, bestLuma := 0, 0
			bestDist := -1.0
			for hue := 0; hue < nesHueCount; hue++ {
				for luma := 0; luma < nesLumaCount; luma++ {
					d := table[hue][luma].Sub(rgb).Magnitude()
					if bestDist < 0 || d < bestDist {
						bestDist, bestHue, bestLuma = d, hue, luma
					}
				}
			}
			return bestHue, bestLuma, 0
		},
		ToRGB: sim.ToRGB,
	}
}
