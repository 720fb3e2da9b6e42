/*
NAME
  spectrum.go

DESCRIPTION
  spectrum.go is a diagnostic companion to the composite simulation in
  nes.go: it repeats a palette entry's 12-sample composite waveform across
  several whole cycles and reports the magnitude spectrum via an FFT over
  exactly those samples (no zero padding, so the subcarrier falls on a bin
  of its own). Useful for eyeballing how cleanly a given
  (hue, luma, emphasis) triad concentrates its energy at the chroma
  subcarrier bin versus leaking into luma or its harmonics; not used by the
  per-pixel mapping path itself.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package nes

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the magnitude spectrum of a synthesized composite waveform,
// plus the index of the bin holding the chroma subcarrier (one cycle per 12
// samples, matching encodeComposite's own phase indexing).
type Spectrum struct {
	Magnitude     []float64
	SubcarrierBin int // index into Magnitude nearest the 1-cycle-per-12-sample chroma subcarrier.
}

// SpectrumOf synthesizes cycles repetitions of the composite waveform for
// one (hue, luma, emphasis) palette entry (the same per-phase voltages
// ToYUV encodes internally) and returns its magnitude spectrum.
func (s Simulation) SpectrumOf(hue, luma, emphasis, cycles int) Spectrum {
	if cycles < 1 {
		cycles = 1
	}

	samples := make([]float64, 0, cycles*12)
	for c := 0; c < cycles; c++ {
		for phase := 0; phase < 12; phase++ {
			backwards := s.p.PALMode && c%2 == 1
			samples = append(samples, s.encodeComposite(emphasis, luma, hue, phase, backwards))
		}
	}

	spectrum := fft.FFTReal(samples)
	mag := make([]float64, len(spectrum)/2+1)
	for i := range mag {
		mag[i] = cmplxAbs(spectrum[i])
	}

	// The buffer holds exactly cycles subcarrier periods, so the subcarrier
	// lands on bin cycles.
	return Spectrum{Magnitude: mag, SubcarrierBin: cycles}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
