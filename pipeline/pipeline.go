/*
NAME
  pipeline.go

DESCRIPTION
  pipeline.go is the per-pixel driver that strings together the optional
  NES PPU front-end, optional CRT front/back emulation, and the core
  gamut mapping into one Map call, then fans whole-image processing out
  across a worker pool with golang.org/x/sync/errgroup. An optional 256^3
  memo table (MapTable) remembers byte-triple results under atomic
  "first writer wins" semantics so repeated colors in a large image only
  pay the mapping cost once.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pipeline wires the gamut, crt, and nes packages into a single
// per-pixel color pipeline and runs it across a raster image in parallel.
package pipeline

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/internal/colorspace"
	"github.com/crtlab/gamutthingy/internal/gamut"
	"github.com/crtlab/gamutthingy/internal/mathutil"
)

// GammaCodec converts between gamma-encoded and linear-light [0,1] values.
type GammaCodec interface {
	ToLinear(v float64) float64
	ToGamma(v float64) float64
}

// linearGamma is the identity codec for GammaMode = linear.
type linearGamma struct{}

func (linearGamma) ToLinear(v float64) float64 { return v }
func (linearGamma) ToGamma(v float64) float64  { return v }

// sRGBGamma implements the piecewise sRGB transfer function.
type sRGBGamma struct{}

func (sRGBGamma) ToLinear(v float64) float64 { return colorspace.SRGBToLinear(v) }
func (sRGBGamma) ToGamma(v float64) float64  { return colorspace.SRGBToGamma(v) }

// rec2084Gamma implements the ST.2084 PQ transfer function at a fixed
// maxNits reference white.
type rec2084Gamma struct{ maxNits float64 }

func (g rec2084Gamma) ToLinear(v float64) float64 { return colorspace.Rec2084ToLinear(v, g.maxNits) }
func (g rec2084Gamma) ToGamma(v float64) float64  { return colorspace.Rec2084ToGamma(v, g.maxNits) }

// LinearCodec is the identity GammaCodec.
func LinearCodec() GammaCodec { return linearGamma{} }

// SRGBCodec is the piecewise sRGB GammaCodec.
func SRGBCodec() GammaCodec { return sRGBGamma{} }

// Rec2084Codec is the ST.2084 PQ GammaCodec, normalized against maxNits.
func Rec2084Codec(maxNits float64) GammaCodec {
	if maxNits == 0 {
		maxNits = 100
	}
	return rec2084Gamma{maxNits: maxNits}
}

// Params configures a Pipeline.
type Params struct {
	Source, Dest *gamut.GBD
	Gamma        GammaCodec
	MapParams    gamut.MapParams

	NES       *NESFrontEnd
	CRTFront  gamut.CRTEmulator
	CRTBack   gamut.CRTEmulator

	// DirectColor, if set, replaces gamut.MapColor entirely: it receives
	// the linear RGB that would otherwise be handed to the gamut mapper
	// and returns the final linear RGB in dest's primaries directly. Used
	// for clip mode (a straight XYZ conversion) and for the
	// color-correction-circuit map modes, which apply the circuit either
	// straight to source RGB or after a VPR boundary-mapping pass.
	DirectColor func(rgb mathutil.Vec3) mathutil.Vec3

	Logger logging.Logger
}

// NESFrontEnd substitutes a synthesized NES PPU composite simulation for
// the input pixel's own gamma-space RGB before the rest of the pipeline
// runs, used when the source image is itself a palette index render.
type NESFrontEnd struct {
	Hue    func(rgb mathutil.Vec3) (hue, luma, emphasis int)
	ToRGB  func(hue, luma, emphasis int) mathutil.Vec3
}

// Pipeline is a configured, reusable per-pixel color pipeline.
type Pipeline struct {
	p Params
}

// New builds a Pipeline from p. p.Logger may be nil.
func New(p Params) *Pipeline {
	if p.Gamma == nil {
		p.Gamma = linearGamma{}
	}
	return &Pipeline{p: p}
}

// MapPixel runs one gamma-space RGB triple through the full pipeline: NES
// front end (if configured) -> CRT front emulation (if configured) -> gamma
// decode -> gamut mapping -> gamma encode -> CRT back emulation (if
// configured).
func (pl *Pipeline) MapPixel(rgb mathutil.Vec3) mathutil.Vec3 {
	if pl.p.NES != nil {
		hue, luma, emp := pl.p.NES.Hue(rgb)
		rgb = pl.p.NES.ToRGB(hue, luma, emp)
	}

	if pl.p.CRTFront != nil {
		rgb = pl.p.CRTFront.GammaToLinear(rgb)
	} else {
		rgb = mathutil.Vec3{
			X: pl.p.Gamma.ToLinear(rgb.X),
			Y: pl.p.Gamma.ToLinear(rgb.Y),
			Z: pl.p.Gamma.ToLinear(rgb.Z),
		}
	}

	var mapped mathutil.Vec3
	if pl.p.DirectColor != nil {
		mapped = pl.p.DirectColor(rgb)
	} else {
		mapped = gamut.MapColor(rgb, pl.p.Source, pl.p.Dest, pl.p.MapParams)
	}

	if pl.p.CRTBack != nil {
		// The destination display is the emulated CRT itself; the output is
		// the gamma-space signal that would drive it to the mapped light,
		// with the pedestal restored.
		return pl.p.CRTBack.LinearToGamma(mapped, true)
	}
	return mathutil.Vec3{
		X: pl.p.Gamma.ToGamma(mapped.X),
		Y: pl.p.Gamma.ToGamma(mapped.Y),
		Z: pl.p.Gamma.ToGamma(mapped.Z),
	}
}

// Image is a raster of 8-bit RGB triples, row-major, alpha handled
// separately by the caller.
type Image struct {
	Width, Height int
	Pix           []byte // len = Width*Height*3
}

// RunImage maps every pixel of img in place, using table (if non-nil) to
// memoize repeated byte triples, fanning rows out across runtime.NumCPU()
// workers. ctx is checked once per row; a cancellation stops new rows from
// starting but does not roll back rows already in flight.
func (pl *Pipeline) RunImage(ctx context.Context, img *Image, table *MapTable) error {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan int, img.Height)
	for y := 0; y < img.Height; y++ {
		rows <- y
	}
	close(rows)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for y := range rows {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				pl.mapRow(img, y, table)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if pl.p.Logger != nil {
			pl.p.Logger.Error("pipeline: row mapping stopped early", "error", err.Error())
		}
		return err
	}
	return nil
}

func (pl *Pipeline) mapRow(img *Image, y int, table *MapTable) {
	rowStart := y * img.Width * 3
	for x := 0; x < img.Width; x++ {
		off := rowStart + x*3
		r, g, b := img.Pix[off], img.Pix[off+1], img.Pix[off+2]

		if table != nil {
			if or, og, ob, ok := table.Lookup(r, g, b); ok {
				img.Pix[off], img.Pix[off+1], img.Pix[off+2] = or, og, ob
				continue
			}
		}

		in := mathutil.Vec3{X: float64(r) / 255.0, Y: float64(g) / 255.0, Z: float64(b) / 255.0}
		out := pl.MapPixel(in)
		or := clampByte(out.X)
		og := clampByte(out.Y)
		ob := clampByte(out.Z)
		img.Pix[off], img.Pix[off+1], img.Pix[off+2] = or, og, ob

		if table != nil {
			table.Store(r, g, b, or, og, ob)
		}
	}
}

func clampByte(v float64) byte {
	scaled := v*255.0 + 0.5
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return byte(scaled)
}

// MapTable is a 256^3 memo table for byte-triple pixel mapping, with
// per-cell atomic "first writer wins" semantics: concurrent writers racing
// on the same input triple always compute the same output (the mapping is
// pure), so the race is harmless and no lock is needed.
type MapTable struct {
	filled [256 * 256 * 256]atomic.Bool
	value  [256 * 256 * 256][3]byte
}

// NewMapTable allocates an empty memo table.
func NewMapTable() *MapTable {
	return &MapTable{}
}

func (t *MapTable) index(r, g, b byte) int {
	return int(r)<<16 | int(g)<<8 | int(b)
}

// Lookup returns the memoized output for (r,g,b), if any cell has been
// filled yet.
func (t *MapTable) Lookup(r, g, b byte) (or, og, ob byte, ok bool) {
	i := t.index(r, g, b)
	if !t.filled[i].Load() {
		return 0, 0, 0, false
	}
	v := t.value[i]
	return v[0], v[1], v[2], true
}

// Store records the output for (r,g,b): the value bytes are written first
// and the filled flag published after, so a concurrent Lookup that observes
// the flag always sees the bytes. Two writers racing on the same cell both
// write the same bytes (the mapping is pure), so first-writer-wins needs no
// lock.
func (t *MapTable) Store(r, g, b, or, og, ob byte) {
	i := t.index(r, g, b)
	if t.filled[i].Load() {
		return
	}
	t.value[i] = [3]byte{or, og, ob}
	t.filled[i].Store(true)
}
