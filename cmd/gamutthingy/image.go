/*
NAME
  image.go

DESCRIPTION
  image.go reads and writes the three raster formats gamutthingy supports
  (PNG and BMP via the standard library/golang.org/x/image, WebP via
  nativewebp), converting to and from pipeline.Image's flat row-major
  8-bit RGB buffer. The output format is chosen from the output path's
  extension.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"

	"github.com/crtlab/gamutthingy/internal/errs"
	"github.com/crtlab/gamutthingy/pipeline"
)

// loadImage reads the image at path (format sniffed from its extension)
// and flattens it into a pipeline.Image.
func loadImage(path string) (*pipeline.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.ImageIOError{Path: path, Cause: err}
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".webp":
		img, err = nativewebp.Decode(f)
	default:
		img, err = png.Decode(f)
	}
	if err != nil {
		return nil, &errs.ImageIOError{Path: path, Cause: fmt.Errorf("decoding: %w", err)}
	}

	bounds := img.Bounds()
	out := &pipeline.Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    make([]byte, bounds.Dx()*bounds.Dy()*3),
	}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*out.Width + x) * 3
			out.Pix[off] = byte(r >> 8)
			out.Pix[off+1] = byte(g >> 8)
			out.Pix[off+2] = byte(b >> 8)
		}
	}
	return out, nil
}

// saveImage writes img to path, picking the encoder from path's extension
// (defaulting to PNG).
func saveImage(path string, img *pipeline.Image) error {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			off := (y*img.Width + x) * 3
			rgba.SetRGBA(x, y, color.RGBA{R: img.Pix[off], G: img.Pix[off+1], B: img.Pix[off+2], A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &errs.ImageIOError{Path: path, Cause: err}
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, rgba)
	case ".webp":
		err = nativewebp.Encode(f, rgba, nil)
	default:
		err = png.Encode(f, rgba)
	}
	if err != nil {
		return &errs.ImageIOError{Path: path, Cause: fmt.Errorf("encoding: %w", err)}
	}
	return nil
}
