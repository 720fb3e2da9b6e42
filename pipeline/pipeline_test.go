/*
NAME
  pipeline_test.go

DESCRIPTION
  pipeline_test.go contains functions for testing the per-pixel driver.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crtlab/gamutthingy/internal/gamut"
	"github.com/crtlab/gamutthingy/internal/mathutil"
	"github.com/crtlab/gamutthingy/internal/tables"
)

func buildTestGBD(t *testing.T, name string, g tables.Gamut) *gamut.GBD {
	t.Helper()
	gbd, err := gamut.New(gamut.Params{
		Name:       name,
		Primaries:  tables.GamutPrimaries[g],
		Whitepoint: tables.WhitepointXY[tables.WhitepointD65],
		CAT:        tables.CATBradford,
	})
	if err != nil {
		t.Fatalf("building %s: %v", name, err)
	}
	return gbd
}

func identityPipeline(t *testing.T) *Pipeline {
	t.Helper()
	g := buildTestGBD(t, "srgb", tables.GamutSRGB)
	return New(Params{
		Source: g,
		Dest:   g,
		Gamma:  SRGBCodec(),
		MapParams: gamut.MapParams{
			Direction:   gamut.MapGCUSP,
			RemapFactor: 0.4,
			RemapLimit:  0.8,
			KneeFactor:  0.2,
		},
	})
}

func TestMapPixelSRGBIdentity(t *testing.T) {
	pl := identityPipeline(t)

	img := &Image{Width: 1, Height: 1, Pix: []byte{0xFF, 0x80, 0x40}}
	if err := pl.RunImage(context.Background(), img, nil); err != nil {
		t.Fatalf("RunImage: %v", err)
	}
	if diff := cmp.Diff([]byte{0xFF, 0x80, 0x40}, img.Pix); diff != "" {
		t.Errorf("sRGB->sRGB identity altered the pixel (-want +got):\n%s", diff)
	}
}

func TestMapPixelBlackWhiteExact(t *testing.T) {
	pl := identityPipeline(t)
	for _, v := range []mathutil.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}} {
		got := pl.MapPixel(v)
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("pixel %+v not preserved (-want +got):\n%s", v, diff)
		}
	}
}

func TestRunImageUsesMemoTable(t *testing.T) {
	pl := identityPipeline(t)
	table := NewMapTable()

	img := &Image{Width: 4, Height: 2, Pix: make([]byte, 4*2*3)}
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 0x20, 0x40, 0x80
	}
	if err := pl.RunImage(context.Background(), img, table); err != nil {
		t.Fatalf("RunImage: %v", err)
	}

	or, og, ob, ok := table.Lookup(0x20, 0x40, 0x80)
	if !ok {
		t.Fatal("memo table was not populated for the repeated pixel")
	}
	if or != img.Pix[0] || og != img.Pix[1] || ob != img.Pix[2] {
		t.Errorf("memo table value (%d,%d,%d) disagrees with the image output (%d,%d,%d)",
			or, og, ob, img.Pix[0], img.Pix[1], img.Pix[2])
	}
}

func TestMapTableFirstWriterWins(t *testing.T) {
	table := NewMapTable()
	table.Store(1, 2, 3, 10, 20, 30)
	table.Store(1, 2, 3, 40, 50, 60)
	or, og, ob, ok := table.Lookup(1, 2, 3)
	if !ok || or != 10 || og != 20 || ob != 30 {
		t.Errorf("Lookup = (%d,%d,%d,%v), want the first writer's (10,20,30,true)", or, og, ob, ok)
	}
}

func TestRunImageCancellation(t *testing.T) {
	pl := identityPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := &Image{Width: 64, Height: 64, Pix: make([]byte, 64*64*3)}
	if err := pl.RunImage(ctx, img, nil); err == nil {
		t.Error("expected an error from a pre-canceled context")
	}
}
