/*
NAME
  main.go

DESCRIPTION
  gbdplot is a diagnostic companion to gamutthingy: it renders one hue
  slice of a gamut boundary descriptor's sampled polyline (chroma against
  luma), optionally overlaid with a second gamut's slice at the same hue
  for comparison, and reports how much of the gamut Spiral CARISMA's hue
  pre-warp would need to touch if mapped toward that second gamut. With
  -nes-spectrum it instead plots the magnitude spectrum of one NES PPU
  palette entry's synthesized composite waveform.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Command gbdplot plots a gamut boundary descriptor's hue-slice polyline,
// or an NES PPU composite waveform's magnitude spectrum.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/crtlab/gamutthingy/internal/gamut"
	"github.com/crtlab/gamutthingy/internal/nes"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func main() {
	gamutName := flag.String("gamut", "srgb", "source gamut name")
	whitepointName := flag.String("whitepoint", "d65", "source gamut whitepoint name")
	destGamutName := flag.String("dest-gamut", "", "optional destination gamut name, for an overlay and a warp-coverage report")
	destWhitepointName := flag.String("dest-whitepoint", "d65", "destination gamut whitepoint name")
	hueDeg := flag.Float64("hue", 0, "hue slice to plot, in degrees")
	out := flag.String("out", "gbdplot.png", "output plot path")

	nesSpectrum := flag.Bool("nes-spectrum", false, "plot an NES palette entry's composite spectrum instead of a gamut slice")
	nesHue := flag.Int("nes-hue", 0x6, "NES palette hue index (0x0-0xf)")
	nesLuma := flag.Int("nes-luma", 2, "NES palette luma index (0-3)")
	nesEmphasis := flag.Int("nes-emphasis", 0, "NES emphasis bits (0-7)")
	nesCycles := flag.Int("nes-cycles", 8, "number of composite cycles to synthesize before the FFT")
	nesPAL := flag.Bool("nes-pal", false, "synthesize the PAL variant (two-line comb, phase reversal)")
	flag.Parse()

	if *nesSpectrum {
		if err := plotNESSpectrum(*nesHue, *nesLuma, *nesEmphasis, *nesCycles, *nesPAL, *out); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := plotGBDSlice(*gamutName, *whitepointName, *destGamutName, *destWhitepointName, *hueDeg, *out); err != nil {
		log.Fatal(err)
	}
}

// buildGBD constructs a plain (no CRT front-end, no Spiral CARISMA) gamut
// boundary descriptor for diagnostic plotting.
func buildGBD(gamutName, whitepointName string) (*gamut.GBD, error) {
	g, ok := tables.ParseGamut(gamutName)
	if !ok {
		return nil, fmt.Errorf("unknown gamut %q", gamutName)
	}
	wp, ok := tables.ParseWhitepoint(whitepointName)
	if !ok {
		return nil, fmt.Errorf("unknown whitepoint %q", whitepointName)
	}
	return gamut.New(gamut.Params{
		Name:       gamutName,
		Primaries:  tables.GamutPrimaries[g],
		Whitepoint: tables.WhitepointXY[wp],
		CAT:        tables.CATBradford,
	})
}

// sliceIndex finds the Slices index nearest hueDeg.
func sliceIndex(hueDeg float64) int {
	hueRad := hueDeg * math.Pi / 180.0
	idx := int(math.Round(hueRad/gamut.HuePerStep)) % gamut.HueSteps
	if idx < 0 {
		idx += gamut.HueSteps
	}
	return idx
}

// plotGBDSlice renders sourceGamut's hue-hueDeg slice, optionally overlaid
// with destGamut's slice at the same hue, and (when destGamut is given)
// logs Spiral CARISMA's warp-coverage summary for the pair.
func plotGBDSlice(sourceGamut, sourceWP, destGamut, destWP string, hueDeg float64, out string) error {
	source, err := buildGBD(sourceGamut, sourceWP)
	if err != nil {
		return fmt.Errorf("source gamut: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s hue=%.1f° boundary", sourceGamut, hueDeg)
	p.X.Label.Text = "chroma"
	p.Y.Label.Text = "luma"

	sourceLine, err := plotter.NewLine(sliceXYs(source, hueDeg))
	if err != nil {
		return fmt.Errorf("building source line: %w", err)
	}
	p.Add(sourceLine)
	p.Legend.Add(sourceGamut, sourceLine)

	if destGamut != "" {
		dest, err := buildGBD(destGamut, destWP)
		if err != nil {
			return fmt.Errorf("dest gamut: %w", err)
		}

		destLine, err := plotter.NewLine(sliceXYs(dest, hueDeg))
		if err != nil {
			return fmt.Errorf("building dest line: %w", err)
		}
		p.Add(destLine)
		p.Legend.Add(destGamut, destLine)

		source.PrepareSpiralCARISMA(dest, 1.0, gamut.MapParams{
			Direction:   gamut.MapGCUSP,
			RemapFactor: 0.4,
			RemapLimit:  0.8,
		})
		logWarpCoverage(sourceGamut, destGamut, source)
	}

	return p.Save(6*vg.Inch, 6*vg.Inch, out)
}

// sliceXYs flattens g's hue-hueDeg slice polyline into plotter.XYs.
func sliceXYs(g *gamut.GBD, hueDeg float64) plotter.XYs {
	slice := g.Slices[sliceIndex(hueDeg)]
	pts := make(plotter.XYs, len(slice.Points))
	for i, b := range slice.Points {
		pts[i].X = b.Chroma
		pts[i].Y = b.Luma
	}
	return pts
}

// logWarpCoverage summarizes how far Spiral CARISMA's primary/secondary hue
// rotations (computed by PrepareSpiralCARISMA) would need to rotate source's
// six anchor colors to land inside dest, using gonum/stat.Mean/StdDev across
// the six rotation angles rather than just eyeballing each one.
func logWarpCoverage(sourceName, destName string, source *gamut.GBD) {
	rotations := []float64{
		source.RedRotation, source.YellowRotation, source.GreenRotation,
		source.CyanRotation, source.BlueRotation, source.MagentaRotation,
	}
	const radToDeg = 180.0 / math.Pi
	mean := stat.Mean(rotations, nil) * radToDeg
	stdDev := stat.StdDev(rotations, nil) * radToDeg
	log.Printf("spiral carisma %s->%s: mean anchor rotation %.2f deg (stddev %.2f) across red/yellow/green/cyan/blue/magenta",
		sourceName, destName, mean, stdDev)
}

// plotNESSpectrum renders one NES palette entry's composite waveform
// magnitude spectrum, marking the chroma subcarrier bin.
func plotNESSpectrum(hue, luma, emphasis, cycles int, pal bool, out string) error {
	sim, err := nes.New(nes.Params{PALMode: pal})
	if err != nil {
		return fmt.Errorf("building nes simulation: %w", err)
	}
	spec := sim.SpectrumOf(hue, luma, emphasis, cycles)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("NES composite spectrum hue=0x%x luma=%d emphasis=0x%x", hue, luma, emphasis)
	p.X.Label.Text = "FFT bin"
	p.Y.Label.Text = "magnitude"

	pts := make(plotter.XYs, len(spec.Magnitude))
	for i, m := range spec.Magnitude {
		pts[i].X = float64(i)
		pts[i].Y = m
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building spectrum line: %w", err)
	}
	p.Add(line)

	if spec.SubcarrierBin < len(spec.Magnitude) {
		marker, err := plotter.NewScatter(plotter.XYs{{
			X: float64(spec.SubcarrierBin),
			Y: spec.Magnitude[spec.SubcarrierBin],
		}})
		if err == nil {
			p.Add(marker)
			p.Legend.Add("subcarrier bin", marker)
		}
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, out)
}
